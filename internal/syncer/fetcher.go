package syncer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/source"
)

// FetchResult holds every event of a range in page order
type FetchResult struct {
	Events []domain.TransferEvent
	Pages  int
}

// Fetcher pulls all pages of a block range from an event source
type Fetcher struct {
	iterator source.PageIterator
	clock    adapter.Clock
	backoff  time.Duration
}

// NewFetcher creates a fetcher that waits backoff before each follow-up page
func NewFetcher(iterator source.PageIterator, clock adapter.Clock, backoff time.Duration) *Fetcher {
	return &Fetcher{
		iterator: iterator,
		clock:    clock,
		backoff:  backoff,
	}
}

// FetchRange returns all transfer events in [fromBlock, toBlock].
// Any page failure aborts the whole range with a *domain.SourceFetchError.
func (f *Fetcher) FetchRange(ctx context.Context, fromBlock, toBlock uint64, filter source.Filter) (*FetchResult, error) {
	result := &FetchResult{}
	if fromBlock > toBlock {
		return result, nil
	}

	state := source.FirstPage(fromBlock, toBlock)
	for {
		page, err := f.iterator.NextPage(ctx, filter, state)
		if err != nil {
			return nil, &domain.SourceFetchError{FromBlock: fromBlock, ToBlock: toBlock, Page: state.Page, Err: err}
		}

		for _, event := range page.Events {
			event.Sequence = len(result.Events)
			result.Events = append(result.Events, event)
		}
		result.Pages++

		logger.InfoCtx(ctx, "Fetched page of transfer events",
			zap.Int("page", state.Page),
			zap.Int("count", len(page.Events)),
			zap.Bool("has_next", page.Next != nil))

		if page.Next == nil {
			return result, nil
		}

		if err := f.clock.SleepContext(ctx, f.backoff); err != nil {
			return nil, &domain.SourceFetchError{FromBlock: fromBlock, ToBlock: toBlock, Page: page.Next.Page, Err: err}
		}
		state = *page.Next
	}
}
