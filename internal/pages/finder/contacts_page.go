// Package finder holds the finder-side contacts page: its load lifecycle and
// the derivation of what each state displays.
package finder

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/models"
	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/services"
)

// PageState is the (loading, error, data) triple the page renders from.
type PageState struct {
	Loading bool
	Error   string
	Data    []models.SendMessageDetail
}

// FetchFailure is the single failure kind of the page: the proposal list
// could not be retrieved.
type FetchFailure struct {
	Message string // What the banner shows
	Err     error
}

func (f *FetchFailure) Error() string {
	if f.Err == nil {
		return "fetch send messages: " + f.Message
	}
	return "fetch send messages: " + f.Err.Error()
}

func (f *FetchFailure) Unwrap() error {
	return f.Err
}

// NewFetchFailure wraps err, taking the banner text from the error's user
// message when it has one and FallbackErrorMessage otherwise.
func NewFetchFailure(err error) *FetchFailure {
	msg := FallbackErrorMessage
	var carrier services.MessageCarrier
	if errors.As(err, &carrier) && carrier.UserMessage() != "" {
		msg = carrier.UserMessage()
	}
	return &FetchFailure{Message: msg, Err: err}
}

// ContactsPage lists the proposals landlords sent to the current finder.
// Each instance is one mount: it fetches exactly once and is then discarded.
type ContactsPage struct {
	svc services.ISendMessageService
	log *zap.Logger

	mu       sync.Mutex
	state    PageState
	failure  *FetchFailure
	mounted  bool
	disposed bool
	cancel   context.CancelFunc

	done     chan struct{}
	doneOnce sync.Once
}

// NewContactsPage creates an unmounted page in the Loading state.
func NewContactsPage(svc services.ISendMessageService, log *zap.Logger) *ContactsPage {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactsPage{
		svc:   svc,
		log:   log,
		state: PageState{Loading: true, Data: []models.SendMessageDetail{}},
		done:  make(chan struct{}),
	}
}

// Mount starts the single fetch. Calls after the first, or after Unmount, do nothing.
func (p *ContactsPage) Mount(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mounted || p.disposed {
		return
	}
	p.mounted = true

	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	go p.fetch(fetchCtx)
}

// Unmount cancels an in-flight fetch; its result, if it still arrives, is dropped.
func (p *ContactsPage) Unmount() {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.disposed = true
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	p.settle()
}

// Done is closed once the fetch has settled or the page was unmounted.
func (p *ContactsPage) Done() <-chan struct{} {
	return p.done
}

// Snapshot returns a copy of the current state.
func (p *ContactsPage) Snapshot() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	s.Data = append([]models.SendMessageDetail(nil), p.state.Data...)
	return s
}

// Failure returns the fetch failure, or nil unless the page is in the Failed state.
func (p *ContactsPage) Failure() *FetchFailure {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failure
}

func (p *ContactsPage) fetch(ctx context.Context) {
	data, err := p.svc.ListSendMessages(ctx)

	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		p.log.Debug("discarding send message result after unmount", zap.Error(err))
		return
	}
	if err != nil {
		p.failure = NewFetchFailure(err)
		p.state = PageState{Loading: false, Error: p.failure.Message, Data: []models.SendMessageDetail{}}
	} else {
		if data == nil {
			data = []models.SendMessageDetail{}
		}
		p.state = PageState{Loading: false, Data: data}
	}
	failure := p.failure
	p.mu.Unlock()

	if failure != nil {
		p.log.Warn("failed to load send messages", zap.String("banner", failure.Message), zap.Error(failure.Err))
	} else {
		p.log.Debug("loaded send messages", zap.Int("count", len(data)))
	}
	p.settle()
}

func (p *ContactsPage) settle() {
	p.doneOnce.Do(func() { close(p.done) })
}
