// Package tickets owns the weighbridge record lifecycle: capture intake,
// edits and repricing, deletes, and the best-effort spreadsheet mirror.
package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
	"github.com/vaychinnakhet-arch/canetrack/internal/service/pricing"
	"github.com/vaychinnakhet-arch/canetrack/internal/service/quota"
	"github.com/vaychinnakhet-arch/canetrack/internal/thaidate"
	"github.com/vaychinnakhet-arch/canetrack/pkg/clients/gemini"
)

// ErrMirrorDisabled is returned by Refresh when no spreadsheet is configured.
var ErrMirrorDisabled = errors.New("spreadsheet mirror is not configured")

// ErrVisionDisabled is returned by AnalyzeImage when no API key is configured.
var ErrVisionDisabled = errors.New("vision model is not configured")

// mirrorTimeout bounds each detached mirror push.
const mirrorTimeout = 15 * time.Second

// Store is the local, authoritative persistence surface.
type Store interface {
	ListTickets(ctx context.Context) ([]models.CaneTicket, error)
	GetTicket(ctx context.Context, id string) (models.CaneTicket, error)
	InsertTicket(ctx context.Context, t models.CaneTicket) error
	UpdateTicket(ctx context.Context, t models.CaneTicket) error
	DeleteTicket(ctx context.Context, id string) error
	ReplaceAllTickets(ctx context.Context, tickets []models.CaneTicket) error
	GetQuotaSettings(ctx context.Context) (models.QuotaSettings, error)
}

// Mirror is the best-effort spreadsheet backend. Any of its operations may
// fail without affecting local state.
type Mirror interface {
	AppendTicket(ctx context.Context, t models.CaneTicket) error
	UpdateTicket(ctx context.Context, t models.CaneTicket) error
	DeleteTicket(ctx context.Context, ticketNumber string) error
	FetchTickets(ctx context.Context) ([]models.CaneTicket, error)
}

// Service coordinates ticket storage, pricing and mirroring. mirror and
// vision may be nil when the respective collaborator is not configured.
type Service struct {
	store  Store
	mirror Mirror
	vision gemini.Client
	logger *zap.Logger
}

// NewService wires a new ticket service instance.
func NewService(store Store, mirror Mirror, vision gemini.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, mirror: mirror, vision: vision, logger: logger}
}

// CreateRequest is a candidate ticket from the capture workflow. Fields
// may be empty or zero on low-confidence extraction; Create coerces them.
type CreateRequest struct {
	TicketNumber  string   `json:"ticketNumber"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	NetWeightKg   float64  `json:"netWeightKg"`
	GrossWeightKg float64  `json:"grossWeightKg"`
	TareWeightKg  float64  `json:"tareWeightKg"`
	LicensePlate  string   `json:"licensePlate"`
	VendorName    string   `json:"vendorName"`
	ProductName   string   `json:"productName"`
	ImageURL      string   `json:"imageUrl"`
	Moisture      *float64 `json:"moisture"`
}

// List returns all tickets in timestamp order.
func (s *Service) List(ctx context.Context) ([]models.CaneTicket, error) {
	return s.store.ListTickets(ctx)
}

// Create stores a new ticket locally and pushes it to the mirror in the
// background. The goal snapshot (target and round) is frozen from the
// settings active right now and never touched again.
func (s *Service) Create(ctx context.Context, req CreateRequest) (models.CaneTicket, error) {
	settings, err := s.store.GetQuotaSettings(ctx)
	if err != nil {
		return models.CaneTicket{}, fmt.Errorf("load quota settings: %w", err)
	}
	settings = settings.Normalize()

	now := time.Now()
	t := models.CaneTicket{
		ID:            uuid.NewString(),
		TicketNumber:  coalesce(req.TicketNumber, models.PlaceholderText),
		Date:          coalesce(req.Date, thaidate.FormatDisplayDate(now)),
		Time:          coalesce(req.Time, now.Format("15:04")),
		NetWeightKg:   nonNegative(req.NetWeightKg),
		GrossWeightKg: nonNegative(req.GrossWeightKg),
		TareWeightKg:  nonNegative(req.TareWeightKg),
		LicensePlate:  coalesce(req.LicensePlate, models.PlaceholderText),
		VendorName:    coalesce(req.VendorName, models.PlaceholderText),
		ProductName:   coalesce(req.ProductName, models.DefaultProductName),
		ImageURL:      req.ImageURL,
		Timestamp:     now.UnixMilli(),
		GoalTarget:    settings.TargetTons,
		GoalRound:     quota.CurrentRound(settings),
	}
	applyMoisture(&t, req.Moisture)

	if err := s.store.InsertTicket(ctx, t); err != nil {
		return models.CaneTicket{}, fmt.Errorf("insert ticket: %w", err)
	}

	s.pushAsync("append", t, func(ctx context.Context) error {
		return s.mirror.AppendTicket(ctx, t)
	})

	s.logger.Info("ticket created",
		zap.String("ticket_id", t.ID),
		zap.String("ticket_number", t.TicketNumber),
		zap.Float64("net_weight_kg", t.NetWeightKg),
		zap.Int("goal_round", t.GoalRound))

	return t, nil
}

// UpdateRequest carries field corrections; nil fields are left untouched.
// Setting Moisture reprices the ticket.
type UpdateRequest struct {
	TicketNumber  *string  `json:"ticketNumber"`
	Date          *string  `json:"date"`
	Time          *string  `json:"time"`
	NetWeightKg   *float64 `json:"netWeightKg"`
	GrossWeightKg *float64 `json:"grossWeightKg"`
	TareWeightKg  *float64 `json:"tareWeightKg"`
	LicensePlate  *string  `json:"licensePlate"`
	VendorName    *string  `json:"vendorName"`
	ProductName   *string  `json:"productName"`
	Moisture      *float64 `json:"moisture"`
}

// Update applies corrections to a stored ticket and keeps the pricing
// invariant intact: whenever moisture or net weight changes, the price and
// total value are recomputed so value never drifts from weight × price.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (models.CaneTicket, error) {
	t, err := s.store.GetTicket(ctx, id)
	if err != nil {
		return models.CaneTicket{}, err
	}

	setString(&t.TicketNumber, req.TicketNumber)
	setString(&t.Date, req.Date)
	setString(&t.Time, req.Time)
	setString(&t.LicensePlate, req.LicensePlate)
	setString(&t.VendorName, req.VendorName)
	setString(&t.ProductName, req.ProductName)
	if req.NetWeightKg != nil {
		t.NetWeightKg = nonNegative(*req.NetWeightKg)
	}
	if req.GrossWeightKg != nil {
		t.GrossWeightKg = nonNegative(*req.GrossWeightKg)
	}
	if req.TareWeightKg != nil {
		t.TareWeightKg = nonNegative(*req.TareWeightKg)
	}

	moisture := t.Moisture
	if req.Moisture != nil {
		moisture = req.Moisture
	}
	applyMoisture(&t, moisture)

	if err := s.store.UpdateTicket(ctx, t); err != nil {
		return models.CaneTicket{}, err
	}

	s.pushAsync("update", t, func(ctx context.Context) error {
		return s.mirror.UpdateTicket(ctx, t)
	})

	s.logger.Info("ticket updated", zap.String("ticket_id", t.ID))
	return t, nil
}

// Delete removes a ticket locally (always authoritative) and clears the
// mirror row on a best-effort basis.
func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.store.GetTicket(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTicket(ctx, id); err != nil {
		return err
	}

	s.pushAsync("delete", t, func(ctx context.Context) error {
		return s.mirror.DeleteTicket(ctx, t.TicketNumber)
	})

	s.logger.Info("ticket deleted", zap.String("ticket_id", id), zap.String("ticket_number", t.TicketNumber))
	return nil
}

// Refresh pulls the mirror and merge-replaces the local set when the sheet
// has rows. An empty sheet leaves local data alone so a misconfigured
// mirror cannot wipe the device.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	if s.mirror == nil {
		return 0, ErrMirrorDisabled
	}

	cloud, err := s.mirror.FetchTickets(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch mirror: %w", err)
	}
	if len(cloud) == 0 {
		s.logger.Info("mirror reachable but empty; keeping local tickets")
		return 0, nil
	}

	if err := s.store.ReplaceAllTickets(ctx, cloud); err != nil {
		return 0, fmt.Errorf("replace local tickets: %w", err)
	}

	s.logger.Info("tickets refreshed from mirror", zap.Int("count", len(cloud)))
	return len(cloud), nil
}

// AnalyzeImage runs the vision model over a slip photo and returns a
// candidate ticket that has not been stored yet.
func (s *Service) AnalyzeImage(ctx context.Context, base64Image string) (CreateRequest, error) {
	if s.vision == nil {
		return CreateRequest{}, ErrVisionDisabled
	}

	ext, err := s.vision.AnalyzeTicketImage(ctx, base64Image)
	if err != nil {
		return CreateRequest{}, fmt.Errorf("analyze slip image: %w", err)
	}

	return CreateRequest{
		TicketNumber:  ext.TicketNumber,
		Date:          ext.Date,
		Time:          ext.Time,
		NetWeightKg:   nonNegative(ext.NetWeightKg),
		GrossWeightKg: nonNegative(ext.GrossWeightKg),
		TareWeightKg:  nonNegative(ext.TareWeightKg),
		LicensePlate:  ext.LicensePlate,
		VendorName:    ext.VendorName,
		ProductName:   ext.ProductName,
		ImageURL:      base64Image,
	}, nil
}

// pushAsync runs one mirror operation detached from the request, with its
// own timeout. Failures are logged, never surfaced: local state already
// committed and stays the source of truth.
func (s *Service) pushAsync(op string, t models.CaneTicket, fn func(ctx context.Context) error) {
	if s.mirror == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			s.logger.Warn("mirror push failed",
				zap.String("op", op),
				zap.String("ticket_id", t.ID),
				zap.Error(err))
			return
		}
		s.logger.Debug("mirror push ok", zap.String("op", op), zap.String("ticket_id", t.ID))
	}()
}

// applyMoisture enforces the pricing invariant: price derives from
// moisture and total value from weight × price, or all three stay unset.
func applyMoisture(t *models.CaneTicket, moisture *float64) {
	if moisture == nil {
		t.Moisture = nil
		t.CanePrice = nil
		t.TotalValue = nil
		return
	}

	m := *moisture
	price := pricing.PriceForMoisture(m)
	value := pricing.TotalValue(t.NetWeightKg, price)
	t.Moisture = &m
	t.CanePrice = &price
	t.TotalValue = &value
}

func coalesce(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
