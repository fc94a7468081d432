// booking loads a CSV data file into an in-memory booking store and prints
// a JSON summary of the users, events and booked tickets it holds.
//
// Configuration comes from --config, or the file named by BOOKING_CONFIG, or
// built-in defaults when neither is set. --data overrides data.path.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"

	"github.com/jacentio/booking/config"
	"github.com/jacentio/booking/facade"
	"github.com/jacentio/booking/loader"
	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/service"
	"github.com/jacentio/booking/store"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type ticketView struct {
	ID       int64          `json:"id"`
	UserID   int64          `json:"user_id"`
	Category model.Category `json:"category"`
	Place    int            `json:"place"`
}

type eventView struct {
	ID      int64        `json:"id"`
	Title   string       `json:"title"`
	Date    time.Time    `json:"date"`
	Tickets []ticketView `json:"tickets"`
}

type summary struct {
	Users  []*model.User `json:"users"`
	Events []eventView   `json:"events"`
}

func run(args []string, stdout, stderr io.Writer) error {
	var configPath, dataPath string
	var pretty bool

	flagSet := pflag.NewFlagSet("booking", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to booking.yaml (default: $"+config.EnvVar+")")
	flagSet.StringVar(&dataPath, "data", "", "CSV file to load (overrides data.path)")
	flagSet.BoolVar(&pretty, "pretty", false, "indent the JSON summary")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}

	logger := cfg.NewLogger(stderr)
	mem := store.NewMemory(store.WithLogger(logger))

	if cfg.Data.Path != "" {
		l := loader.New(loader.WithDateLayout(cfg.Data.DateLayout), loader.WithLogger(logger))
		f, err := os.Open(cfg.Data.Path)
		if err != nil {
			return fmt.Errorf("open data file: %w", err)
		}
		n, err := l.Into(mem, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load %s: %w", cfg.Data.Path, err)
		}
		logger.Info("store initialized", "path", cfg.Data.Path, "entities", n)
	}

	ids := store.NewIDGenerator()
	if cfg.Store.IDSeed > 0 {
		ids = store.NewIDGeneratorFrom(cfg.Store.IDSeed)
	}

	bf, err := facade.NewDefault(mem, ids, cfg.Facade(), facade.WithLogger(logger))
	if err != nil {
		return err
	}

	s, err := summarize(bf)
	if err != nil {
		return err
	}

	api := jsoniter.ConfigCompatibleWithStandardLibrary
	var out []byte
	if pretty {
		out, err = api.MarshalIndent(s, "", "  ")
	} else {
		out, err = api.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		return config.LoadFile(path)
	case os.Getenv(config.EnvVar) != "":
		return config.Load()
	default:
		return config.Default(), nil
	}
}

// summarize walks every page of users and events through the facade.
func summarize(bf *facade.BookingFacade) (*summary, error) {
	s := &summary{Users: []*model.User{}, Events: []eventView{}}

	for pageNum := 1; ; pageNum++ {
		users, err := bf.GetUsersByName("", service.MaxPageSize, pageNum)
		if err != nil {
			return nil, err
		}
		if len(users) == 0 {
			break
		}
		s.Users = append(s.Users, users...)
	}

	for pageNum := 1; ; pageNum++ {
		events, err := bf.GetEventsByTitle("", service.MaxPageSize, pageNum)
		if err != nil {
			return nil, err
		}
		if len(events) == 0 {
			break
		}
		for _, e := range events {
			v, err := viewEvent(bf, e)
			if err != nil {
				return nil, err
			}
			s.Events = append(s.Events, v)
		}
	}
	return s, nil
}

func viewEvent(bf *facade.BookingFacade, e *model.Event) (eventView, error) {
	v := eventView{ID: e.ID, Title: e.Title, Date: e.Date, Tickets: []ticketView{}}
	for pageNum := 1; ; pageNum++ {
		tickets, err := bf.GetBookedTicketsForEvent(e, service.MaxPageSize, pageNum)
		if err != nil {
			return v, err
		}
		if len(tickets) == 0 {
			return v, nil
		}
		for _, t := range tickets {
			v.Tickets = append(v.Tickets, ticketView{ID: t.ID, UserID: t.UserID(), Category: t.Category, Place: t.Place})
		}
	}
}
