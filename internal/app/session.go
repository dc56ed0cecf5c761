// Package app holds the session state machine that drives a document from
// upload through the scripted processing run to results.
package app

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gocanopy/dealsense/internal/classify"
	"github.com/gocanopy/dealsense/internal/history"
	"github.com/gocanopy/dealsense/internal/mockgen"
	"github.com/gocanopy/dealsense/internal/models"
	"github.com/gocanopy/dealsense/internal/pipeline"
	"github.com/gocanopy/dealsense/internal/samples"
	"github.com/gocanopy/dealsense/pkg/utils"
)

// State is the session's position in the upload/processing/results flow.
type State string

const (
	StateUpload     State = "upload"
	StateProcessing State = "processing"
	StateResults    State = "results"
)

// Indexer receives completed analyses. Satisfied by search.Index.
type Indexer interface {
	IndexAnalysis(a *models.AnalysisResult) error
}

// Snapshot is a point-in-time copy of the session, safe to serialize.
type Snapshot struct {
	State     State                    `json:"state"`
	Document  *models.UploadedDocument `json:"document,omitempty"`
	Progress  *pipeline.Progress       `json:"progress,omitempty"`
	Analysis  *models.AnalysisResult   `json:"analysis,omitempty"`
	ShareOpen bool                     `json:"share_open"`
}

// Session is the single-user state machine. One processing run at a time; a
// started run cannot be cancelled, and none of the transitions return errors
// to the caller. Failures along the way are logged and the run continues.
type Session struct {
	store   history.Store
	gen     *mockgen.Generator
	sleeper pipeline.Sleeper
	index   Indexer
	logger  *zap.Logger

	mu        sync.Mutex
	state     State
	document  *models.UploadedDocument
	progress  *pipeline.Progress
	analysis  *models.AnalysisResult
	shareOpen bool
	runDone   chan struct{}
}

// Option configures a Session.
type Option func(*Session)

// WithSleeper injects the pipeline pacing. Tests pass a fake for instant runs.
func WithSleeper(s pipeline.Sleeper) Option {
	return func(sess *Session) { sess.sleeper = s }
}

// WithGenerator overrides the analysis generator, e.g. with a seeded one.
func WithGenerator(g *mockgen.Generator) Option {
	return func(sess *Session) { sess.gen = g }
}

// WithIndexer registers a search index to receive completed analyses.
func WithIndexer(ix Indexer) Option {
	return func(sess *Session) { sess.index = ix }
}

// NewSession creates a session in the Upload state.
func NewSession(store history.Store, logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		store:  store,
		logger: logger,
		state:  StateUpload,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = mockgen.New(mockgen.WithSource(rand.NewSource(time.Now().UnixNano())))
	}
	if s.sleeper == nil {
		s.sleeper = pipeline.SystemSleeper{}
	}
	return s
}

// SelectDocument validates the upload, classifies it by filename, and starts
// a processing run. The validation error is the only failure surfaced to the
// caller; once the run starts nothing can stop it. Selecting a document
// outside the Upload state is ignored.
func (s *Session) SelectDocument(req models.UploadRequest) (*models.UploadedDocument, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	doc := &models.UploadedDocument{
		ID:           utils.NewID(),
		Name:         req.Name,
		Size:         req.Size,
		MimeType:     req.MimeType,
		UploadedAt:   time.Now(),
		DocumentType: classify.Detect(req.Name),
	}
	s.begin(doc)
	return doc, nil
}

// LoadSample starts a processing run from a catalog entry. The sample carries
// its own document type, so the filename classifier is not consulted. Returns
// false for an unknown sample id.
func (s *Session) LoadSample(sampleID string) (*models.UploadedDocument, bool) {
	doc, ok := samples.Load(sampleID)
	if !ok {
		return nil, false
	}
	s.begin(doc)
	return doc, true
}

func (s *Session) begin(doc *models.UploadedDocument) {
	s.mu.Lock()
	if s.state != StateUpload {
		s.mu.Unlock()
		s.logger.Warn("document selected outside upload state, ignoring",
			zap.String("state", string(s.state)),
			zap.String("document", doc.Name))
		return
	}
	s.state = StateProcessing
	s.document = doc
	s.analysis = nil
	s.shareOpen = false
	done := make(chan struct{})
	s.runDone = done
	s.mu.Unlock()

	s.logger.Info("processing started",
		zap.String("document_id", doc.ID),
		zap.String("document", doc.Name),
		zap.String("document_type", string(doc.DocumentType)))

	go s.run(doc, done)
}

func (s *Session) run(doc *models.UploadedDocument, done chan struct{}) {
	defer close(done)

	runner := pipeline.NewRunner(s.sleeper, func(p pipeline.Progress) {
		s.mu.Lock()
		s.progress = &p
		s.mu.Unlock()
	})
	runner.Run()

	result := s.gen.Generate(doc.ID, doc.DocumentType)

	if err := s.store.Save(result); err != nil {
		// History is best effort; the user still gets their results.
		s.logger.Warn("failed to save analysis to history", zap.Error(err))
	}
	if s.index != nil {
		if err := s.index.IndexAnalysis(result); err != nil {
			s.logger.Warn("failed to index analysis", zap.Error(err))
		}
	}

	s.mu.Lock()
	s.analysis = result
	s.state = StateResults
	s.mu.Unlock()

	s.logger.Info("processing complete",
		zap.String("analysis_id", result.ID),
		zap.String("recommendation", string(result.AIInsight.Recommendation)))
}

// Reset returns the session to the Upload state. It is ignored while a run is
// in flight, since a started run cannot be cancelled. History is untouched.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateProcessing {
		s.logger.Warn("reset requested during processing, ignoring")
		return
	}
	s.state = StateUpload
	s.document = nil
	s.progress = nil
	s.analysis = nil
	s.shareOpen = false
}

// OpenShare marks the share overlay open. Ignored outside Results.
func (s *Session) OpenShare() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResults {
		return
	}
	s.shareOpen = true
}

// CloseShare marks the share overlay closed.
func (s *Session) CloseShare() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shareOpen = false
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		State:     s.state,
		ShareOpen: s.shareOpen,
	}
	if s.document != nil {
		d := *s.document
		snap.Document = &d
	}
	if s.progress != nil {
		p := *s.progress
		snap.Progress = &p
	}
	if s.analysis != nil {
		snap.Analysis = s.analysis
	}
	return snap
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Wait blocks until the most recently started run finishes. Returns
// immediately if no run was ever started.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.runDone
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}
