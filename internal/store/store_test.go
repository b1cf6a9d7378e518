package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repair-backend/internal/models"
)

// fakeDurable records saves and can be told to fail.
type fakeDurable struct {
	mu      sync.Mutex
	initial models.Snapshot
	loadErr error
	saveErr error
	saves   []models.Snapshot
}

func (f *fakeDurable) Load(ctx context.Context) (models.Snapshot, error) {
	return f.initial, f.loadErr
}

func (f *fakeDurable) Save(ctx context.Context, snap models.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, snap)
	return nil
}

func (f *fakeDurable) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeDurable) lastSave() models.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}

func snapWithService(id string) models.Snapshot {
	return models.Snapshot{Services: []models.ServiceRecord{{ServiceID: id}}}
}

func TestLoadAllReturnsDefensiveCopy(t *testing.T) {
	s := New(nil)
	s.ReplaceAll(models.Snapshot{Vendors: []models.VendorRecord{{
		VendorID: "VND001",
		Phones:   []models.PhoneIntake{{PhoneID: "VND001-P001"}},
	}}})

	got := s.LoadAll()
	got.Vendors[0].Phones[0].Billed = true
	got.Vendors[0].VendorID = "mutated"

	fresh := s.LoadAll()
	assert.Equal(t, "VND001", fresh.Vendors[0].VendorID)
	assert.False(t, fresh.Vendors[0].Phones[0].Billed)
}

func TestReplaceAllVisibleImmediately(t *testing.T) {
	s := New(nil)
	s.ReplaceAll(snapWithService("SRV001"))
	assert.Len(t, s.LoadAll().Services, 1)
}

func TestInitialLoadFromDurable(t *testing.T) {
	durable := &fakeDurable{initial: snapWithService("SRV001")}
	s := New(durable)
	defer s.Close()

	assert.Len(t, s.LoadAll().Services, 1)
}

func TestFailedInitialLoadStartsEmpty(t *testing.T) {
	durable := &fakeDurable{loadErr: errors.New("backend down")}
	s := New(durable)
	defer s.Close()

	snap := s.LoadAll()
	assert.Empty(t, snap.Services)
	assert.Empty(t, snap.Vendors)

	// the store is usable despite the failed load
	s.ReplaceAll(snapWithService("SRV001"))
	assert.Len(t, s.LoadAll().Services, 1)
}

func TestMutationIsFlushedAsynchronously(t *testing.T) {
	durable := &fakeDurable{}
	s := New(durable)
	defer s.Close()

	s.ReplaceAll(snapWithService("SRV001"))

	require.Eventually(t, func() bool {
		return durable.saveCount() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "SRV001", durable.lastSave().Services[0].ServiceID)
}

func TestCoalescedFlushesCarryLatestSnapshot(t *testing.T) {
	durable := &fakeDurable{}
	s := New(durable)

	for i := 0; i < 50; i++ {
		s.ReplaceAll(snapWithService("SRV001"))
	}
	s.ReplaceAll(snapWithService("SRV999"))
	s.Close() // drains the pending flush

	require.GreaterOrEqual(t, durable.saveCount(), 1)
	assert.Equal(t, "SRV999", durable.lastSave().Services[0].ServiceID)
}

func TestFlushFailureDoesNotAffectWorkingSet(t *testing.T) {
	durable := &fakeDurable{saveErr: errors.New("disk full")}
	s := New(durable)
	defer s.Close()

	s.ReplaceAll(snapWithService("SRV001"))

	// the in-memory snapshot is updated and stays usable
	assert.Len(t, s.LoadAll().Services, 1)
	assert.Error(t, s.Flush(context.Background()))
}

func TestExportNeverMutates(t *testing.T) {
	s := New(nil)
	s.ReplaceAll(snapWithService("SRV001"))

	export := s.Export()
	export.Services[0].ServiceID = "tampered"

	assert.Equal(t, "SRV001", s.LoadAll().Services[0].ServiceID)
}
