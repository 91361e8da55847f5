package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"clinic-admin-server/internal/models"
	"clinic-admin-server/internal/pricing"
)

const mirrorTimeout = 10 * time.Second

// Collections is the full serialized state held in the local cache blob.
type Collections struct {
	Patients      []models.Patient      `json:"patients"`
	Appointments  []models.Appointment  `json:"appointments"`
	Revenues      []models.Revenue      `json:"revenues"`
	DailyServices []models.DailyService `json:"dailyServices"`
	Coupons       []models.Coupon       `json:"coupons"`
	DiscountRates []models.DiscountRate `json:"discountRates"`
}

// Store is the local-first ledger store. Every mutation happens against the
// in-memory collections, is write-through snapshotted to the cache, and is
// then mirrored to the remote store fire-and-forget. Local state is
// authoritative for all reads; mirror failures are logged and ignored.
type Store struct {
	mu        sync.Mutex
	data      Collections
	cache     Cache
	mirror    Mirror
	catalog   *pricing.Catalog
	log       zerolog.Logger
	namespace string

	now func() time.Time // overridable in tests
}

// New loads the snapshot for namespace from cache. A missing or corrupt
// blob degrades to empty collections rather than failing startup.
func New(cache Cache, mirror Mirror, catalog *pricing.Catalog, namespace string, log zerolog.Logger) *Store {
	s := &Store{
		cache:     cache,
		mirror:    mirror,
		catalog:   catalog,
		log:       log,
		namespace: namespace,
		now:       time.Now,
	}
	if s.mirror == nil {
		s.mirror = NoopMirror{}
	}

	blob, err := cache.Load(namespace)
	if err != nil {
		log.Warn().Err(err).Str("namespace", namespace).Msg("cache load failed, starting empty")
		return s
	}
	if blob == nil {
		return s
	}
	if err := json.Unmarshal(blob, &s.data); err != nil {
		log.Warn().Err(err).Str("namespace", namespace).Msg("cache blob corrupt, starting empty")
		s.data = Collections{}
	}
	return s
}

// Catalog exposes the service catalog the store was built with.
func (s *Store) Catalog() *pricing.Catalog {
	return s.catalog
}

// today returns the current date string.
func (s *Store) today() string {
	return s.now().Format(models.DateFormat)
}

// persist rewrites the full snapshot. Called with s.mu held.
func (s *Store) persist() {
	blob, err := json.Marshal(s.data)
	if err != nil {
		s.log.Error().Err(err).Msg("snapshot marshal failed")
		return
	}
	if err := s.cache.Save(s.namespace, blob); err != nil {
		s.log.Error().Err(err).Str("namespace", s.namespace).Msg("snapshot save failed")
	}
}

// mirrorAsync runs one remote write in the background after the local
// mutation has committed. Failures never surface to the caller.
func (s *Store) mirrorAsync(op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.log.Error().Err(err).Str("op", op).Msg("remote mirror write failed")
		}
	}()
}
