package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/paintmap/internal/common"
	"github.com/dmitrijs2005/paintmap/internal/server/images"
	"github.com/dmitrijs2005/paintmap/internal/server/models"
	"github.com/dmitrijs2005/paintmap/internal/server/repositories/repomanager"
)

// MapService reads and writes the map owned by each account.
type MapService struct {
	mu          *sync.RWMutex
	repomanager repomanager.RepositoryManager
	clock       Clock
	images      images.Store
}

// GetByAccount returns the account's map merged with its template.
func (s *MapService) GetByAccount(ctx context.Context, accountID string) (*models.MapView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := s.repomanager.Maps().Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error reading map %s: %w", accountID, err)
	}

	v := models.NewMapView(*m)
	return &v, nil
}

// GetEmpty builds, without storing it, the default map for mapType.
func (s *MapService) GetEmpty(mapType string, shareLevel int) models.MapView {
	return models.NewMapView(models.NewDefaultMap(mapType, shareLevel, s.clock.Now()))
}

// Save replaces the account's map with payload, a JSON map document. Each
// field missing from the payload takes its default value rather than the
// stored one, and last_update is always stamped here.
//
// The payload must carry the account's own id, otherwise
// common.ErrorMismatch is returned and nothing is written.
func (s *MapService) Save(ctx context.Context, accountID string, payload []byte) error {
	p, err := parseMapPayload(payload)
	if err != nil {
		return err
	}

	if p.ID == nil || string(*p.ID) != accountID {
		return common.ErrorMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// the account may have been deleted since its credentials were checked
	if _, err := s.repomanager.Accounts().GetByID(ctx, accountID); err != nil {
		return fmt.Errorf("error saving map %s: %w", accountID, err)
	}

	m := p.toMap(s.clock.Now())
	if err := s.repomanager.Maps().Put(ctx, accountID, m); err != nil {
		return fmt.Errorf("error saving map %s: %w", accountID, err)
	}
	return nil
}

// GetShared returns the map stored under id for anonymous viewing. A
// missing map yields common.ErrorNotFound, a private one
// common.ErrorNotShared.
func (s *MapService) GetShared(ctx context.Context, id string) (*models.MapView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := s.repomanager.Maps().Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error reading map %s: %w", id, err)
	}

	if !m.Shared() {
		return nil, common.ErrorNotShared
	}

	v := models.NewMapView(*m)
	return &v, nil
}

// UploadImage hands the rendered image of the account's map to the image
// store.
func (s *MapService) UploadImage(ctx context.Context, accountID string, image string) error {
	if err := s.images.Put(ctx, accountID, image); err != nil {
		return fmt.Errorf("error storing image: %w", err)
	}
	return nil
}

// payloadID accepts an id written either as a JSON string or a number.
type payloadID string

func (id *payloadID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = payloadID(s)
		return nil
	}

	if len(b) == 0 || (b[0] != '-' && (b[0] < '0' || b[0] > '9')) {
		return fmt.Errorf("map id must be a string or a number, got %s", b)
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = payloadID(n.String())
	return nil
}

// mapPayload mirrors models.Map with every field optional. A nil field
// was absent (or null) in the document.
type mapPayload struct {
	ID            *payloadID           `json:"id"`
	Type          *string              `json:"type"`
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	Legend        []models.LegendEntry `json:"legend"`
	ScoreFormat   *int                 `json:"score_format"`
	Data          map[string]float64   `json:"data"`
	ShareLevel    *int                 `json:"share_level"`
	NonZeroLegend *string              `json:"non_zero_legend"`
}

func parseMapPayload(b []byte) (*mapPayload, error) {
	var p mapPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorParse, err)
	}
	return &p, nil
}

func (p *mapPayload) toMap(lastUpdate int64) models.Map {
	mapType := common.DefaultMapType
	if p.Type != nil {
		mapType = *p.Type
	}

	m := models.NewDefaultMap(mapType, 0, lastUpdate)

	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Legend != nil {
		m.Legend = p.Legend
	}
	if p.ScoreFormat != nil {
		m.ScoreFormat = *p.ScoreFormat
	}
	if p.Data != nil {
		m.Data = p.Data
	}
	if p.ShareLevel != nil {
		m.ShareLevel = *p.ShareLevel
	}
	if p.NonZeroLegend != nil {
		m.NonZeroLegend = *p.NonZeroLegend
	}
	return m
}
