//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package milvus provides a client for the Milvus vector index over its
// HTTP API (v2). The index stores pre-computed sentence embeddings plus a
// sentence_id pointing into the passage store; query-time search returns
// (sentence_id, distance) pairs ordered by ascending distance.
package milvus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"
)

// ErrUnavailable is returned when the index service is unreachable or
// returns an unusable response. Callers degrade to an empty context rather
// than failing the request.
var ErrUnavailable = errors.New("vector index unavailable")

const (
	defaultTimeout     = 15
	defaultMetricType  = "L2"
	defaultNprobe      = 10
	embeddingFieldName = "embedding"
	idFieldName        = "sentence_id"
)

// Config contains connection settings for the index service.
type Config struct {
	Host           string
	Port           int
	Collection     string
	MetricType     string
	Nprobe         int
	TimeoutSeconds int
}

// Client is a Milvus HTTP API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	collection string
	metricType string
	nprobe     int
}

// NewClient creates a new index client.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout == 0 {
		timeout = defaultTimeout
	}
	metric := cfg.MetricType
	if metric == "" {
		metric = defaultMetricType
	}
	nprobe := cfg.Nprobe
	if nprobe == 0 {
		nprobe = defaultNprobe
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		baseURL:    fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port),
		collection: cfg.Collection,
		metricType: metric,
		nprobe:     nprobe,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL, overriding host and port.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// Hit is a single nearest-neighbor search result.
type Hit struct {
	PassageID int64   `json:"passage_id"`
	Distance  float64 `json:"distance"`
}

// request makes an HTTP request to the Milvus API. Transport failures are
// reported as ErrUnavailable.
func (c *Client) request(
	ctx context.Context,
	path string,
	body interface{},
) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return resp, nil
}

// searchRequest is the request format for the entity search API.
type searchRequest struct {
	CollectionName string         `json:"collectionName"`
	Data           [][]float32    `json:"data"`
	AnnsField      string         `json:"annsField"`
	Limit          int            `json:"limit"`
	OutputFields   []string       `json:"outputFields"`
	SearchParams   map[string]any `json:"searchParams"`
}

// searchResponse is the response format from the entity search API.
type searchResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    []struct {
		Distance   float64 `json:"distance"`
		SentenceID int64   `json:"sentence_id"`
	} `json:"data"`
}

// Search performs an approximate nearest-neighbor search for the given
// embedding. Results are ordered by ascending distance and capped at topK.
// An index with no data yields an empty slice, not an error.
func (c *Client) Search(
	ctx context.Context,
	embedding []float32,
	topK int,
) ([]Hit, error) {
	if topK < 1 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	reqBody := searchRequest{
		CollectionName: c.collection,
		Data:           [][]float32{embedding},
		AnnsField:      embeddingFieldName,
		Limit:          topK,
		OutputFields:   []string{idFieldName},
		SearchParams: map[string]any{
			"metricType": c.metricType,
			"params": map[string]any{
				"nprobe": c.nprobe,
			},
		},
	}

	resp, err := c.request(ctx, "/v2/vectordb/entities/search", reqBody)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrUnavailable, err)
	}

	if searchResp.Code != 0 {
		return nil, fmt.Errorf("%w: code %d: %s",
			ErrUnavailable, searchResp.Code, searchResp.Message)
	}

	hits := make([]Hit, 0, len(searchResp.Data))
	for _, d := range searchResp.Data {
		hits = append(hits, Hit{PassageID: d.SentenceID, Distance: d.Distance})
	}

	// The index returns hits closest-first already; the ordering is a
	// contract downstream, so enforce it here.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}

	return hits, nil
}

// describeRequest is the request format for the collection describe API.
type describeRequest struct {
	CollectionName string `json:"collectionName"`
}

// describeResponse is the response format from the collection describe API.
type describeResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		CollectionName string `json:"collectionName"`
		Fields         []struct {
			Name   string `json:"name"`
			Type   string `json:"type"`
			Params []struct {
				Key   string `json:"key"`
				Value string `json:"value"`
			} `json:"params"`
		} `json:"fields"`
	} `json:"data"`
}

// CollectionInfo describes the configured collection.
type CollectionInfo struct {
	Name      string
	Dimension int
}

// Describe fetches the collection schema. Used at startup to verify the
// embedding model's dimensionality matches the index.
func (c *Client) Describe(ctx context.Context) (*CollectionInfo, error) {
	reqBody := describeRequest{CollectionName: c.collection}

	resp, err := c.request(ctx, "/v2/vectordb/collections/describe", reqBody)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	var descResp describeResponse
	if err := json.Unmarshal(body, &descResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrUnavailable, err)
	}

	if descResp.Code != 0 {
		return nil, fmt.Errorf("%w: code %d: %s",
			ErrUnavailable, descResp.Code, descResp.Message)
	}

	info := &CollectionInfo{Name: descResp.Data.CollectionName}
	for _, f := range descResp.Data.Fields {
		if f.Name != embeddingFieldName {
			continue
		}
		for _, p := range f.Params {
			if p.Key == "dim" {
				dim, err := strconv.Atoi(p.Value)
				if err != nil {
					return nil, fmt.Errorf("invalid dim %q in collection schema", p.Value)
				}
				info.Dimension = dim
			}
		}
	}

	if info.Dimension == 0 {
		return nil, fmt.Errorf("collection %s has no %s vector field",
			c.collection, embeddingFieldName)
	}

	return info, nil
}

// Collection returns the configured collection name.
func (c *Client) Collection() string {
	return c.collection
}
