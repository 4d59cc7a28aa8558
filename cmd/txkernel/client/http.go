package client

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/urfave/cli"
)

func httpGet(ctx *cli.Context, url string) ([]byte, error) {
	client, err := getClient(ctx)
	if err != nil {
		return nil, err
	}

	/* #nosec */
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}

	return readBody(resp)
}

func httpPost(ctx *cli.Context, url string, data []byte) ([]byte, error) {
	client, err := getClient(ctx)
	if err != nil {
		return nil, err
	}

	/* #nosec */
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}

	return readBody(resp)
}

func readBody(resp *http.Response) ([]byte, error) {
	c, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if err := resp.Body.Close(); err != nil {
		return nil, err
	}

	return c, nil
}

func getClient(ctx *cli.Context) (*http.Client, error) {
	certPath := ctx.GlobalString("cert")
	if certPath == "" {
		return http.DefaultClient, nil
	}

	return getHttpsClient(certPath)
}

func getHttpsClient(certPath string) (*http.Client, error) {
	caCert, err := ioutil.ReadFile(certPath)
	if err != nil {
		return nil, err
	}

	caCertPool := x509.NewCertPool()
	caCertPool.AppendCertsFromPEM(caCert)
	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				RootCAs: caCertPool,
			},
		},
	}, nil
}

func getURL(ctx *cli.Context, p string) string {
	api := strings.TrimSpace(ctx.GlobalString("gateway"))
	if !strings.HasSuffix(api, "/") {
		api = api + "/"
	}

	return api + p
}
