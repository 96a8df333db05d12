package tests

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Response ответы сервиса текстовые, поэтому тело отдаётся строкой.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       string
}

type APIClient struct {
	baseURL    string
	origin     string
	httpClient *http.Client
}

func NewAPIClient(
	baseURL string,
	httpClient *http.Client,
) APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return APIClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// WithOrigin подставляет заголовок Origin во все запросы, как браузер.
func (a APIClient) WithOrigin(origin string) APIClient {
	a.origin = origin
	return a
}

func (a APIClient) Get(
	ctx context.Context,
	endpoint string,
) (Response, error) {
	return a.httpRequest(ctx, http.MethodGet, endpoint, nil, http.NoBody)
}

func (a APIClient) Options(
	ctx context.Context,
	endpoint string,
) (Response, error) {
	headers := http.Header{}
	headers.Set("Access-Control-Request-Method", http.MethodPost)
	headers.Set("Access-Control-Request-Headers", "content-type")

	return a.httpRequest(ctx, http.MethodOptions, endpoint, headers, http.NoBody)
}

func (a APIClient) Post(
	ctx context.Context,
	endpoint string,
	request any,
) (Response, error) {
	b, err := json.Marshal(request)
	if err != nil {
		return Response{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return a.httpRequest(ctx, http.MethodPost, endpoint, nil, bytes.NewReader(b))
}

func (a APIClient) PostJSON(
	ctx context.Context,
	endpoint string,
	requestJSON string,
) (Response, error) {
	return a.httpRequest(ctx, http.MethodPost, endpoint, nil, bytes.NewReader([]byte(requestJSON)))
}

func (a APIClient) httpRequest(
	ctx context.Context,
	httpMethod string,
	endpoint string,
	headers http.Header,
	payload io.Reader,
) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, httpMethod, a.baseURL+endpoint, payload)
	if err != nil {
		return Response{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	logRequest(req)

	if httpMethod == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	if a.origin != "" {
		req.Header.Set("Origin", a.origin)
	}

	for k, v := range headers {
		req.Header[k] = v
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	logResponse(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("io.ReadAll: %w", err)
	}

	return Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       string(body),
	}, nil
}

func logRequest(r *http.Request) {
	log.Printf("Request:  %s %s", r.Method, r.URL)
}

func logResponse(r *http.Response) {
	rawResponse, err := httputil.DumpResponse(r, true)
	if err == nil {
		log.Println("Response:", string(rawResponse))
	}
}
