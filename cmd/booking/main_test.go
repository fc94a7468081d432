package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_Run_PrintsSummary(t *testing.T) {
	t.Setenv("BOOKING_CONFIG", "")
	data := writeFile(t, "data.csv", `user,1,Dummy user,dummy@email.com
user,2,Other user,other@email.com
event,10,Dummy title,2023-12-31
ticket,20,BAR,1,10,4
ticket,21,STANDARD,2,10,5
`)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--data", data}, &stdout, &stderr))

	var got summary
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(stdout.Bytes(), &got))
	assert.Len(t, got.Users, 2)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "Dummy title", got.Events[0].Title)
	require.Len(t, got.Events[0].Tickets, 2)
	assert.Equal(t, int64(20), got.Events[0].Tickets[0].ID)
	assert.Contains(t, stderr.String(), "store initialized")
}

func Test_Run_ConfigFile(t *testing.T) {
	data := writeFile(t, "data.csv", "event,1,Gig,31.12.2023\n")
	cfg := writeFile(t, "booking.yaml", "data:\n  path: "+data+"\n  date_layout: 02.01.2006\nlog:\n  format: json\n")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--config", cfg, "--pretty"}, &stdout, &stderr))

	assert.Contains(t, stdout.String(), "\n  \"users\": []")
	assert.Contains(t, stdout.String(), `"title": "Gig"`)
	assert.Contains(t, stderr.String(), `"msg":"store initialized"`)
}

func Test_Run_Errors(t *testing.T) {
	t.Setenv("BOOKING_CONFIG", "")
	var stdout, stderr bytes.Buffer

	assert.Error(t, run([]string{"extra"}, &stdout, &stderr))
	assert.Error(t, run([]string{"--unknown"}, &stdout, &stderr))
	assert.Error(t, run([]string{"--data", filepath.Join(t.TempDir(), "missing.csv")}, &stdout, &stderr))

	bad := writeFile(t, "bad.csv", "ticket,1,BAR,1,2,3\n")
	assert.Error(t, run([]string{"--data", bad}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func Test_Run_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.NoError(t, run([]string{"--help"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--data")
}
