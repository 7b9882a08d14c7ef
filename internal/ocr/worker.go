package ocr

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/metrics"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

// Worker defines the interface for background workers
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}

// Manager owns the lifecycle of registered workers.
type Manager struct {
	workers []Worker
	logger  *zap.Logger

	mu        sync.RWMutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		workers: make([]Worker, 0),
		logger:  logger,
	}
}

// Register adds a worker to be managed
func (m *Manager) Register(worker Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workers = append(m.workers, worker)
	m.logger.Info("worker registered", zap.String("worker", worker.Name()))
}

// StartAll starts all registered workers
func (m *Manager) StartAll(ctx context.Context) error {
	m.mu.Lock()
	if m.isRunning {
		m.mu.Unlock()
		return fmt.Errorf("workers already running")
	}
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.isRunning = true
	m.mu.Unlock()

	for _, worker := range m.workers {
		if err := worker.Start(m.ctx); err != nil {
			m.logger.Error("failed to start worker",
				zap.String("worker", worker.Name()),
				zap.Error(err))
			continue
		}
		m.logger.Info("worker started", zap.String("worker", worker.Name()))
	}
	return nil
}

// StopAll gracefully stops all workers
func (m *Manager) StopAll() error {
	m.mu.Lock()
	if !m.isRunning {
		m.mu.Unlock()
		return nil
	}
	m.isRunning = false
	m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
	}

	for _, worker := range m.workers {
		if err := worker.Stop(); err != nil {
			m.logger.Error("failed to stop worker",
				zap.String("worker", worker.Name()),
				zap.Error(err))
		}
	}
	return nil
}

// ReceiptQueue is the slice of the receipt repository the worker needs.
type ReceiptQueue interface {
	// ClaimPendingOCR flips up to limit pending receipts to processing and
	// returns them; concurrent workers never claim the same row.
	ClaimPendingOCR(ctx context.Context, limit int) ([]*models.Receipt, error)
	MarkOCRSucceeded(ctx context.Context, id int, vendor string, amount, tax *float64, purchaseDate *time.Time, currency string) error
	MarkOCRFailed(ctx context.Context, id int, errMsg string) error
}

// FileStore is the read side of object storage.
type FileStore interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// ReceiptWorkerConfig holds configuration for the receipt OCR worker
type ReceiptWorkerConfig struct {
	PollInterval   time.Duration
	BatchSize      int
	ProcessTimeout time.Duration
}

func DefaultReceiptWorkerConfig() ReceiptWorkerConfig {
	return ReceiptWorkerConfig{
		PollInterval:   10 * time.Second,
		BatchSize:      5,
		ProcessTimeout: 120 * time.Second,
	}
}

// ReceiptWorker drains the OCR queue: claims pending receipts, runs the
// engine against the stored file, and writes extracted fields back.
type ReceiptWorker struct {
	config ReceiptWorkerConfig
	queue  ReceiptQueue
	files  FileStore
	engine Engine
	logger *zap.Logger

	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	isRunning bool
	processed int
	failed    int
}

func NewReceiptWorker(config ReceiptWorkerConfig, queue ReceiptQueue, files FileStore, engine Engine, logger *zap.Logger) *ReceiptWorker {
	return &ReceiptWorker{
		config: config,
		queue:  queue,
		files:  files,
		engine: engine,
		logger: logger,
	}
}

// Start begins the worker polling loop
func (w *ReceiptWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.isRunning {
		w.mu.Unlock()
		return fmt.Errorf("receipt worker already running")
	}
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.isRunning = true
	w.mu.Unlock()

	w.logger.Info("ReceiptWorker started",
		zap.Duration("poll_interval", w.config.PollInterval),
		zap.Int("batch_size", w.config.BatchSize),
		zap.String("engine", w.engine.Name()))

	go w.pollLoop()
	return nil
}

// Stop gracefully terminates the worker
func (w *ReceiptWorker) Stop() error {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return nil
	}
	w.isRunning = false
	w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}

	w.logger.Info("ReceiptWorker stopped",
		zap.Int("processed", w.processed),
		zap.Int("failed", w.failed))
	return nil
}

func (w *ReceiptWorker) Name() string { return "ReceiptWorker" }

// EngineName reports which extraction engine the worker is running.
func (w *ReceiptWorker) EngineName() string { return w.engine.Name() }

// Stats reports lifetime processed and failed counts for this worker.
func (w *ReceiptWorker) Stats() (processed, failed int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.processed, w.failed
}

func (w *ReceiptWorker) pollLoop() {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if err := w.processBatch(); err != nil {
				w.logger.Error("OCR batch failed", zap.Error(err))
			}
		}
	}
}

func (w *ReceiptWorker) processBatch() error {
	receipts, err := w.queue.ClaimPendingOCR(w.ctx, w.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to claim pending receipts: %w", err)
	}

	for _, receipt := range receipts {
		if err := w.processReceipt(receipt); err != nil {
			w.mu.Lock()
			w.failed++
			w.mu.Unlock()
			metrics.OCRJobsTotal.WithLabelValues("failed").Inc()
			w.logger.Error("receipt OCR failed",
				zap.Int("receipt_id", receipt.ID),
				zap.Error(err))
			continue
		}
		w.mu.Lock()
		w.processed++
		w.mu.Unlock()
		metrics.OCRJobsTotal.WithLabelValues("succeeded").Inc()
	}
	return nil
}

func (w *ReceiptWorker) processReceipt(receipt *models.Receipt) error {
	ctx, cancel := context.WithTimeout(w.ctx, w.config.ProcessTimeout)
	defer cancel()

	w.logger.Info("processing receipt",
		zap.Int("receipt_id", receipt.ID),
		zap.String("file", receipt.OriginalFilename))

	rc, err := w.files.Get(ctx, receipt.StorageKey)
	if err != nil {
		msg := fmt.Sprintf("failed to read file: %v", err)
		w.queue.MarkOCRFailed(ctx, receipt.ID, msg)
		return fmt.Errorf("%s", msg)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		msg := fmt.Sprintf("failed to read file: %v", err)
		w.queue.MarkOCRFailed(ctx, receipt.ID, msg)
		return fmt.Errorf("%s", msg)
	}

	ext, err := w.engine.Extract(ctx, data, receipt.ContentType)
	if err != nil {
		w.queue.MarkOCRFailed(ctx, receipt.ID, err.Error())
		return err
	}

	vendor, amount, tax, date, currency := MergeExtraction(receipt, ext)
	if err := w.queue.MarkOCRSucceeded(ctx, receipt.ID, vendor, amount, tax, date, currency); err != nil {
		return fmt.Errorf("failed to save extraction: %w", err)
	}

	w.logger.Info("receipt extracted",
		zap.Int("receipt_id", receipt.ID),
		zap.String("vendor", vendor))
	return nil
}

// MergeExtraction folds engine output into the receipt, leaving any field the
// uploader already edited by hand untouched.
func MergeExtraction(receipt *models.Receipt, ext *Extraction) (vendor string, amount, tax *float64, date *time.Time, currency string) {
	locked := make(map[string]bool, len(receipt.UserEdited))
	for _, f := range receipt.UserEdited {
		locked[f] = true
	}

	vendor = receipt.Vendor
	if !locked["vendor"] && ext.Vendor != "" {
		vendor = ext.Vendor
	}

	amount = receipt.Amount
	if !locked["amount"] && ext.Amount != nil {
		amount = ext.Amount
	}

	tax = receipt.TaxAmount
	if !locked["tax_amount"] && ext.TaxAmount != nil {
		tax = ext.TaxAmount
	}

	date = receipt.PurchaseDate
	if !locked["purchase_date"] && ext.PurchaseDate != nil {
		date = ext.PurchaseDate
	}

	currency = receipt.Currency
	if !locked["currency"] && ext.Currency != "" {
		currency = ext.Currency
	}

	return vendor, amount, tax, date, currency
}
