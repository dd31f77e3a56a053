package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type ProgressService struct{ db *gorm.DB }

func NewProgressService(db *gorm.DB) *ProgressService { return &ProgressService{db: db} }

// ProgressInput creates or updates a record.
type ProgressInput struct {
	Weight     *float64  `json:"weight,omitempty"`
	BodyFat    *float64  `json:"body_fat,omitempty"`
	Muscle     *float64  `json:"muscle,omitempty"`
	Notes      string    `json:"notes"`
	RecordDate time.Time `json:"record_date" binding:"required"`
}

func (s *ProgressService) Create(actor Actor, input ProgressInput) (*models.ProgressRecord, error) {
	record := models.ProgressRecord{
		UserID:     actor.ID,
		Weight:     input.Weight,
		BodyFat:    input.BodyFat,
		Muscle:     input.Muscle,
		Notes:      input.Notes,
		RecordDate: input.RecordDate,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ProgressFilter mirrors the list query parameters.
type ProgressFilter struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
	Skip int        `form:"skip"`
	Take int        `form:"take"`
}

// Normalize clamps paging to the served range; controllers call it too
// so the pagination envelope reflects the effective page size.
func (f *ProgressFilter) Normalize() {
	if f.Take <= 0 {
		f.Take = 20
	}
	if f.Take > 100 {
		f.Take = 100
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
}

func (s *ProgressService) listFor(userID uint, filter ProgressFilter) ([]models.ProgressRecord, int64, error) {
	filter.Normalize()

	q := s.db.Model(&models.ProgressRecord{}).Where("user_id = ?", userID)
	if filter.From != nil {
		q = q.Where("record_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("record_date <= ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.ProgressRecord
	err := q.Order("record_date DESC").Offset(filter.Skip).Limit(filter.Take).Find(&records).Error
	return records, total, err
}

func (s *ProgressService) List(actor Actor, filter ProgressFilter) ([]models.ProgressRecord, int64, error) {
	return s.listFor(actor.ID, filter)
}

func (s *ProgressService) get(actor Actor, id uint) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	if err := s.db.First(&record, id).Error; err != nil {
		return nil, fmt.Errorf("%w: progress record", utils.ErrNotFound)
	}
	if !Allowed(actor, ActionEditProgress, &record) {
		return nil, fmt.Errorf("%w: progress record belongs to another user", utils.ErrForbidden)
	}
	return &record, nil
}

func (s *ProgressService) Get(actor Actor, id uint) (*models.ProgressRecord, error) {
	return s.get(actor, id)
}

func (s *ProgressService) Update(actor Actor, id uint, input ProgressInput) (*models.ProgressRecord, error) {
	record, err := s.get(actor, id)
	if err != nil {
		return nil, err
	}

	record.Weight = input.Weight
	record.BodyFat = input.BodyFat
	record.Muscle = input.Muscle
	record.Notes = input.Notes
	record.RecordDate = input.RecordDate
	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *ProgressService) Delete(actor Actor, id uint) error {
	record, err := s.get(actor, id)
	if err != nil {
		return err
	}
	return s.db.Delete(record).Error
}

// MetricDelta compares the first and latest reported values of one
// metric; nil when the metric was never reported.
type MetricDelta struct {
	First  float64 `json:"first"`
	Latest float64 `json:"latest"`
	Change float64 `json:"change"`
}

type ProgressStats struct {
	TotalRecords int64        `json:"total_records"`
	FirstDate    *time.Time   `json:"first_date,omitempty"`
	LatestDate   *time.Time   `json:"latest_date,omitempty"`
	Weight       *MetricDelta `json:"weight,omitempty"`
	BodyFat      *MetricDelta `json:"body_fat,omitempty"`
	Muscle       *MetricDelta `json:"muscle,omitempty"`
}

func metricDelta(records []models.ProgressRecord, pick func(models.ProgressRecord) *float64) *MetricDelta {
	var first, latest *float64
	for _, r := range records { // records ordered oldest first
		if v := pick(r); v != nil {
			if first == nil {
				first = v
			}
			latest = v
		}
	}
	if first == nil {
		return nil
	}
	return &MetricDelta{
		First:  *first,
		Latest: *latest,
		Change: round2(*latest - *first),
	}
}

func (s *ProgressService) Stats(actor Actor) (*ProgressStats, error) {
	var records []models.ProgressRecord
	if err := s.db.Where("user_id = ?", actor.ID).
		Order("record_date ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	stats := ProgressStats{TotalRecords: int64(len(records))}
	if len(records) > 0 {
		stats.FirstDate = &records[0].RecordDate
		stats.LatestDate = &records[len(records)-1].RecordDate
	}
	stats.Weight = metricDelta(records, func(r models.ProgressRecord) *float64 { return r.Weight })
	stats.BodyFat = metricDelta(records, func(r models.ProgressRecord) *float64 { return r.BodyFat })
	stats.Muscle = metricDelta(records, func(r models.ProgressRecord) *float64 { return r.Muscle })
	return &stats, nil
}

type ChartPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Chart returns the time series of one metric; records without a value
// for that metric are skipped.
func (s *ProgressService) Chart(actor Actor, metric string, from, to *time.Time) ([]ChartPoint, error) {
	var pick func(models.ProgressRecord) *float64
	switch metric {
	case "weight":
		pick = func(r models.ProgressRecord) *float64 { return r.Weight }
	case "bodyFat":
		pick = func(r models.ProgressRecord) *float64 { return r.BodyFat }
	case "muscle":
		pick = func(r models.ProgressRecord) *float64 { return r.Muscle }
	default:
		return nil, fmt.Errorf("%w: metric must be weight, bodyFat or muscle", utils.ErrValidation)
	}

	q := s.db.Where("user_id = ?", actor.ID)
	if from != nil {
		q = q.Where("record_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("record_date <= ?", *to)
	}

	var records []models.ProgressRecord
	if err := q.Order("record_date ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	points := make([]ChartPoint, 0, len(records))
	for _, r := range records {
		if v := pick(r); v != nil {
			points = append(points, ChartPoint{Date: r.RecordDate, Value: *v})
		}
	}
	return points, nil
}

// ClientRecords lets a nutritionist read a client's progress log, but
// only while an ACTIVE contract links the two.
func (s *ProgressService) ClientRecords(actor Actor, clientID uint, filter ProgressFilter) ([]models.ProgressRecord, int64, error) {
	var contract models.Contract
	err := s.db.Where("client_id = ? AND nutritionist_id = ? AND status = ?",
		clientID, actor.ID, models.ContractActive).First(&contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, fmt.Errorf("%w: no active contract with this client", utils.ErrForbidden)
	}
	if err != nil {
		return nil, 0, err
	}
	if !Allowed(actor, ActionViewClientProgress, &contract) {
		return nil, 0, fmt.Errorf("%w: no active contract with this client", utils.ErrForbidden)
	}
	return s.listFor(clientID, filter)
}

// AddPhoto uploads one progress photo to S3 and appends its URL to the
// record's photo list.
func (s *ProgressService) AddPhoto(ctx context.Context, actor Actor, id uint, body io.Reader, filename, contentType string) (*models.ProgressRecord, error) {
	record, err := s.get(actor, id)
	if err != nil {
		return nil, err
	}

	url, err := utils.UploadProgressPhoto(ctx, body, filename, contentType)
	if err != nil {
		return nil, err
	}

	var photos []string
	if len(record.Photos) > 0 {
		if err := json.Unmarshal(record.Photos, &photos); err != nil {
			return nil, err
		}
	}
	photos = append(photos, url)
	raw, err := json.Marshal(photos)
	if err != nil {
		return nil, err
	}
	record.Photos = raw

	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}
