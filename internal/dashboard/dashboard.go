package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrListFetch      = errors.New("list fetch failed")
	ErrStatusUpdate   = errors.New("status update failed")
	ErrToggleInFlight = errors.New("status update already in flight")
	ErrClosed         = errors.New("dashboard closed")
)

const DefaultNoticeDuration = 2 * time.Second

type Options struct {
	PageSize       int
	NoticeDuration time.Duration
	// NoticeKey identifies this dashboard's notices on a shared NoticeBoard.
	NoticeKey string
	Now       func() time.Time
}

// Dashboard is the doctor administration view for one operator session.
// Backend calls never run under the state lock, and results that arrive
// after Close are dropped.
type Dashboard struct {
	client    DoctorClient
	notices   NoticeBoard
	log       *logrus.Logger
	noticeKey string
	noticeTTL time.Duration
	now       func() time.Time

	// lifetime is cancelled by Close and bounds every backend call
	lifetime context.Context
	cancel   context.CancelFunc

	mu      sync.Mutex
	state   State
	mounted bool
	closed  bool
}

func New(client DoctorClient, notices NoticeBoard, log *logrus.Logger, opts Options) *Dashboard {
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = DefaultNoticeDuration
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NoticeKey == "" {
		opts.NoticeKey = uuid.NewString()
	}

	lifetime, cancel := context.WithCancel(context.Background())
	return &Dashboard{
		client:    client,
		notices:   notices,
		log:       log,
		noticeKey: opts.NoticeKey,
		noticeTTL: opts.NoticeDuration,
		now:       opts.Now,
		lifetime:  lifetime,
		cancel:    cancel,
		state:     NewState(opts.PageSize),
	}
}

// Mount loads the doctor list. Only the first call on a dashboard reaches the backend.
// A failed load is logged and leaves the list empty.
func (d *Dashboard) Mount(ctx context.Context) {
	d.mu.Lock()
	if d.mounted || d.closed {
		d.mu.Unlock()
		return
	}
	d.mounted = true
	d.mu.Unlock()

	if err := d.load(ctx); err != nil {
		d.log.Warnf("Failed to fetch doctors: %+v", err)
	}
}

func (d *Dashboard) load(ctx context.Context) error {
	ctx, cancel := d.bound(ctx)
	defer cancel()

	doctors, err := d.client.ListDoctors(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListFetch, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.state.Doctors = doctors
	return nil
}

// ToggleStatus asks the backend to set the doctor's flag to !isActive.
// Local state and the notice change only after the backend accepts it;
// failures are logged and leave the row as it was.
func (d *Dashboard) ToggleStatus(ctx context.Context, doctorID uuid.UUID, isActive bool) {
	if err := d.toggle(ctx, doctorID, isActive); err != nil {
		d.log.WithField("doctor_id", doctorID).Warnf("Failed to toggle doctor status: %+v", err)
	}
}

func (d *Dashboard) toggle(ctx context.Context, doctorID uuid.UUID, isActive bool) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if _, busy := d.state.Pending[doctorID]; busy {
		d.mu.Unlock()
		return ErrToggleInFlight
	}
	d.state.Pending[doctorID] = struct{}{}
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.state.Pending, doctorID)
		d.mu.Unlock()
	}()

	reqCtx, cancel := d.bound(ctx)
	defer cancel()

	target := !isActive
	if err := d.client.SetDoctorStatus(reqCtx, doctorID, target); err != nil {
		return fmt.Errorf("%w: %w", ErrStatusUpdate, err)
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	for i := range d.state.Doctors {
		if d.state.Doctors[i].ID == doctorID {
			d.state.Doctors[i].IsActive = target
		}
	}
	d.mu.Unlock()

	notice := StatusNotice(target, d.now().Add(d.noticeTTL))
	if err := d.notices.Post(ctx, d.noticeKey, notice, d.noticeTTL); err != nil {
		d.log.Warnf("Failed to post status notice: %+v", err)
	}
	return nil
}

// SetSearch changes the search term and returns to the first page when it differs.
func (d *Dashboard) SetSearch(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if term == d.state.Search {
		return
	}
	d.state.Search = term
	d.state.Page = 1
}

func (d *Dashboard) PrevPage() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Page = PrevPage(d.state.Page)
}

func (d *Dashboard) NextPage() {
	d.mu.Lock()
	defer d.mu.Unlock()
	total := TotalPages(len(FilterByName(d.state.Doctors, d.state.Search)), d.state.PageSize)
	d.state.Page = NextPage(d.state.Page, total)
}

// View renders the current state together with any live notice.
func (d *Dashboard) View(ctx context.Context) View {
	d.mu.Lock()
	v := Derive(d.state)
	d.mu.Unlock()

	notice, err := d.notices.Current(ctx, d.noticeKey)
	if err != nil {
		d.log.Warnf("Failed to read status notice: %+v", err)
		return v
	}
	if notice != nil && d.now().Before(notice.ExpiresAt) {
		v.Notice = notice
	}
	return v
}

// Close unmounts the dashboard. In-flight backend calls are cancelled and their results ignored.
func (d *Dashboard) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.cancel()
}

// bound ties ctx to the dashboard lifetime.
func (d *Dashboard) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(d.lifetime, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (d *Dashboard) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
