package moralis_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/providers/moralis"
	"github.com/feral-file/ff-ownership-syncer/internal/source"
)

const (
	testContract = "0x06012c8cf97BEaD5deAe237070F9587f8E7A266d"
	testTopic    = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	testEventABI = `{"anonymous":false,"inputs":[{"indexed":false,"name":"from","type":"address"},{"indexed":false,"name":"to","type":"address"},{"indexed":false,"name":"tokenId","type":"uint256"}],"name":"Transfer","type":"event"}`
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestSource(serverURL string) source.EventSource {
	httpClient := adapter.NewHTTPClient(5*time.Second, adapter.RetryConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		MaxElapsedTime:  100 * time.Millisecond,
	})
	return moralis.NewEventSource(httpClient, moralis.Config{
		APIURL: serverURL,
		APIKey: "test-key",
		Chain:  "eth",
	})
}

func testFilter() source.Filter {
	return source.Filter{
		Chain:           domain.ChainEthereumMainnet,
		ContractAddress: testContract,
		EventTopic:      testTopic,
		EventABIJSON:    testEventABI,
		Limit:           2,
	}
}

func TestEventSource_NextPage(t *testing.T) {
	var requests []*http.Request
	var bodies []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, r)
		bodies = append(bodies, string(body))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("cursor") == "" {
			_, _ = w.Write([]byte(`{"page":0,"page_size":2,"cursor":"next-page","result":[
				{"transaction_hash":"0xaa","block_number":"101","log_index":3,"data":{"from":"0x1111111111111111111111111111111111111111","to":"0x2222222222222222222222222222222222222222","tokenId":"1"}},
				{"transaction_hash":"0xbb","block_number":"102","data":{"_from":"0x2222222222222222222222222222222222222222","_to":"0x3333333333333333333333333333333333333333","_tokenId":115792089237316195423570985008687907853269984665640564039457584007913129639935}}
			]}`))
			return
		}
		_, _ = w.Write([]byte(`{"page":1,"page_size":2,"cursor":null,"result":[
			{"transaction_hash":"0xcc","block_number":"103","data":{"from":"0x2222222222222222222222222222222222222222","to":"0x3333333333333333333333333333333333333333","tokenId":"1"}}
		]}`))
	}))
	defer server.Close()

	src := newTestSource(server.URL)
	ctx := context.Background()

	first, err := src.NextPage(ctx, testFilter(), source.FirstPage(101, 105))
	require.NoError(t, err)
	require.Len(t, first.Events, 2)
	require.NotNil(t, first.Next)
	assert.Equal(t, "next-page", first.Next.Cursor)
	assert.Equal(t, 2, first.Next.Page)

	assert.Equal(t, uint64(101), first.Events[0].BlockNumber)
	assert.Equal(t, uint(3), first.Events[0].LogIndex)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", first.Events[0].ToAddress)
	assert.Equal(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935", first.Events[1].TokenID)

	second, err := src.NextPage(ctx, testFilter(), *first.Next)
	require.NoError(t, err)
	require.Len(t, second.Events, 1)
	assert.Nil(t, second.Next)

	require.Len(t, requests, 2)
	req := requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/"+testContract+"/events", req.URL.Path)
	assert.Equal(t, "test-key", req.Header.Get("X-API-Key"))
	assert.Equal(t, "eth", req.URL.Query().Get("chain"))
	assert.Equal(t, testTopic, req.URL.Query().Get("topic"))
	assert.Equal(t, "101", req.URL.Query().Get("from_block"))
	assert.Equal(t, "105", req.URL.Query().Get("to_block"))
	assert.Equal(t, "2", req.URL.Query().Get("limit"))
	assert.Equal(t, testEventABI, bodies[0])
	assert.Equal(t, "next-page", requests[1].URL.Query().Get("cursor"))
}

func TestEventSource_NextPage_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid key"}`))
	}))
	defer server.Close()

	_, err := newTestSource(server.URL).NextPage(context.Background(), testFilter(), source.FirstPage(101, 105))
	require.Error(t, err)

	var statusErr *adapter.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestEventSource_NextPage_MissingParameter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":[{"transaction_hash":"0xaa","block_number":"101","data":{"from":"0x1111111111111111111111111111111111111111","tokenId":"1"}}]}`))
	}))
	defer server.Close()

	_, err := newTestSource(server.URL).NextPage(context.Background(), testFilter(), source.FirstPage(101, 105))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event parameter to not found")
}

func TestEventSource_BlockForTimestamp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dateToBlock", r.URL.Path)
		assert.Equal(t, "eth", r.URL.Query().Get("chain"))
		assert.Equal(t, "2024-01-01T00:00:00Z", r.URL.Query().Get("date"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		_, _ = w.Write([]byte(`{"block":18908895,"date":"2024-01-01T00:00:00+00:00","timestamp":1704067199}`))
	}))
	defer server.Close()

	block, err := newTestSource(server.URL).BlockForTimestamp(context.Background(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, uint64(18908895), block)
}
