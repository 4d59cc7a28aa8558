package client

import (
	"flag"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func newContext(t *testing.T, gateway string, args ...string) *cli.Context {
	globalSet := flag.NewFlagSet("client", flag.ContinueOnError)
	globalSet.String("gateway", gateway, "")
	globalSet.String("cert", "", "")
	parent := cli.NewContext(nil, globalSet, nil)

	set := flag.NewFlagSet("cmd", flag.ContinueOnError)
	set.Bool("source", false, "")
	require.Nil(t, set.Parse(args))
	return cli.NewContext(nil, set, parent)
}

func TestGetURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9091/v1/kernel", getURL(newContext(t, "http://localhost:9091/v1"), "kernel"))
	assert.Equal(t, "http://localhost:9091/v1/kernel", getURL(newContext(t, " http://localhost:9091/v1/ "), "kernel"))
}

func TestGetTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/transactions/0x01":
			_, _ = w.Write([]byte(`{"id":"0x01","account_id":"0x0000000000000007"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"transaction not found"}`))
		}
	}))
	defer server.Close()

	assert.Nil(t, getTransaction(newContext(t, server.URL+"/v1/", "0x01")))

	err := getTransaction(newContext(t, server.URL+"/v1/", "0x02"))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "transaction not found")

	assert.NotNil(t, getTransaction(newContext(t, server.URL+"/v1/")))
}

func TestPrintResult(t *testing.T) {
	assert.Nil(t, printResult([]byte(`{"proc_count":3}`)))
	assert.NotNil(t, printResult([]byte(`{"error":"bad"}`)))
}

func TestSubmitTransaction(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"account_id":"0x0000000000000007","status":"queued"}`))
	}))
	defer server.Close()

	file := filepath.Join(t.TempDir(), "tx.json")
	require.Nil(t, ioutil.WriteFile(file, []byte(`{"account_id":"0x0000000000000007"}`), 0644))

	assert.Nil(t, submitTransaction(newContext(t, server.URL+"/v1/", file)))
	assert.Equal(t, "async=true", query)

	assert.NotNil(t, submitTransaction(newContext(t, server.URL+"/v1/")))
}

func TestGetKernelSource(t *testing.T) {
	source := "begin end"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/kernel/source":
			_, _ = w.Write([]byte(source))
		default:
			_, _ = w.Write([]byte(`{"proc_count":3}`))
		}
	}))
	defer server.Close()

	assert.Nil(t, getKernel(newContext(t, server.URL+"/v1/", "--source")))
	assert.Nil(t, getKernel(newContext(t, server.URL+"/v1/")))

	source = `{"error":"kernel source not configured"}`
	err := getKernel(newContext(t, server.URL+"/v1/", "--source"))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
