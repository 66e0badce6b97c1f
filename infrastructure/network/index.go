package network

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/imroc/req"
	"hrms.io/infrastructure/logger"
)

type NetworkController struct {
	BaseUrl string
	Timeout time.Duration

	once   sync.Once
	client *req.Req
}

func (nc *NetworkController) preRequest() {
	nc.once.Do(func() {
		nc.client = req.New()
		timeout := nc.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		nc.client.SetTimeout(timeout)
	})
}

func (nc *NetworkController) url(path string) string {
	return strings.TrimSuffix(nc.BaseUrl, "/") + "/" + strings.TrimPrefix(path, "/")
}

func (nc *NetworkController) Get(ctx context.Context, path string, headers *map[string]string, params *map[string]string) (*[]byte, *int, error) {
	return nc.do(ctx, http.MethodGet, path, headers, nil, params)
}

func (nc *NetworkController) Post(ctx context.Context, path string, headers *map[string]string, body any, params *map[string]string) (*[]byte, *int, error) {
	return nc.do(ctx, http.MethodPost, path, headers, body, params)
}

func (nc *NetworkController) Put(ctx context.Context, path string, headers *map[string]string, body any, params *map[string]string) (*[]byte, *int, error) {
	return nc.do(ctx, http.MethodPut, path, headers, body, params)
}

func (nc *NetworkController) Delete(ctx context.Context, path string, headers *map[string]string, params *map[string]string) (*[]byte, *int, error) {
	return nc.do(ctx, http.MethodDelete, path, headers, nil, params)
}

func (nc *NetworkController) do(ctx context.Context, method string, path string, headers *map[string]string, body any, params *map[string]string) (*[]byte, *int, error) {
	nc.preRequest()
	options := []interface{}{ctx}
	header := req.Header{"Accept": "application/json"}
	if headers != nil {
		for key, value := range *headers {
			header[key] = value
		}
	}
	options = append(options, header)
	if params != nil {
		query := req.QueryParam{}
		for key, value := range *params {
			query[key] = value
		}
		options = append(options, query)
	}
	if body != nil {
		options = append(options, req.BodyJSON(body))
	}

	started := time.Now()
	response, err := nc.client.Do(method, nc.url(path), options...)
	if err != nil {
		logger.Error("network request failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "url",
			Data: nc.url(path),
		}, logger.LoggerOptions{
			Key:  "method",
			Data: method,
		})
		return nil, nil, err
	}
	data, err := response.ToBytes()
	if err != nil {
		logger.Error("could not read network response body", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "url",
			Data: nc.url(path),
		})
		return nil, nil, err
	}
	statusCode := response.Response().StatusCode
	logger.Debug("network request completed", logger.LoggerOptions{
		Key:  "url",
		Data: nc.url(path),
	}, logger.LoggerOptions{
		Key:  "statusCode",
		Data: statusCode,
	}, logger.LoggerOptions{
		Key:  "duration",
		Data: time.Since(started).String(),
	})
	return &data, &statusCode, nil
}
