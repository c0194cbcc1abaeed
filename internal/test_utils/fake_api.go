// Package test_utils provides an in-process fake of the remote budgeting
// service. Store client tests run against it instead of a live backend:
// it implements the items, scheduled-items, and balance-adjustments
// endpoints over in-memory maps with the same contracts the real service
// honors (atomic total reorder, one pin per date, month-scoped occurrence
// listing, embedded budgetItem resolution).
package test_utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

type ItemRecord struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	DisplayOrder int     `json:"displayOrder"`
}

type OccurrenceRecord struct {
	ID           int         `json:"id"`
	BudgetItemID int         `json:"budgetItemId"`
	Date         string      `json:"date"`
	Amount       *float64    `json:"amount,omitempty"`
	Name         *string     `json:"name,omitempty"`
	Item         *ItemRecord `json:"budgetItem,omitempty"`
}

type AdjustmentRecord struct {
	ID     int     `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// FakeAPI is the in-memory backend behind an httptest.Server.
type FakeAPI struct {
	mu sync.Mutex

	nextID      int
	items       map[int]ItemRecord
	occurrences map[int]OccurrenceRecord
	adjustments map[string]AdjustmentRecord

	server *httptest.Server
}

// StartFakeAPI boots the fake service and registers its shutdown with the
// test's cleanup.
func StartFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	api := &FakeAPI{
		items:       map[int]ItemRecord{},
		occurrences: map[int]OccurrenceRecord{},
		adjustments: map[string]AdjustmentRecord{},
	}

	r := mux.NewRouter()

	r.HandleFunc("/api/items", api.listItems).Methods("GET")
	r.HandleFunc("/api/items", api.createItem).Methods("POST")
	r.HandleFunc("/api/items/reorder", api.reorderItems).Methods("PUT")
	r.HandleFunc("/api/items/{id:[0-9]+}", api.updateItem).Methods("PUT")
	r.HandleFunc("/api/items/{id:[0-9]+}", api.deleteItem).Methods("DELETE")

	r.HandleFunc("/api/scheduled-items/month", api.listMonth).Methods("GET")
	r.HandleFunc("/api/scheduled-items", api.createOccurrence).Methods("POST")
	r.HandleFunc("/api/scheduled-items/{id:[0-9]+}", api.updateOccurrence).Methods("PUT")
	r.HandleFunc("/api/scheduled-items/{id:[0-9]+}", api.deleteOccurrence).Methods("DELETE")

	r.HandleFunc("/api/balance-adjustments", api.listAdjustments).Methods("GET")
	r.HandleFunc("/api/balance-adjustments", api.setAdjustment).Methods("POST")
	r.HandleFunc("/api/balance-adjustments/{id:[0-9]+}", api.deleteAdjustment).Methods("DELETE")

	api.server = httptest.NewServer(r)
	t.Cleanup(api.server.Close)
	return api
}

// URL is the base address clients should be pointed at.
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// SeedItem inserts an item directly, bypassing the HTTP surface.
func (f *FakeAPI) SeedItem(record ItemRecord) ItemRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record.ID == 0 {
		f.nextID++
		record.ID = f.nextID
	}
	f.items[record.ID] = record
	return record
}

// ItemCount reports how many items the fake currently stores.
func (f *FakeAPI) ItemCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func (f *FakeAPI) listItems(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]ItemRecord, 0, len(f.items))
	for _, it := range f.items {
		items = append(items, it)
	}
	sort.Slice(items, func(a, b int) bool {
		if items[a].DisplayOrder != items[b].DisplayOrder {
			return items[a].DisplayOrder < items[b].DisplayOrder
		}
		return items[a].ID < items[b].ID
	})
	writeJSON(w, http.StatusOK, items)
}

func (f *FakeAPI) createItem(w http.ResponseWriter, r *http.Request) {
	var record ItemRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	record.ID = f.nextID
	if record.DisplayOrder == 0 {
		record.DisplayOrder = len(f.items) + 1
	}
	f.items[record.ID] = record
	writeJSON(w, http.StatusCreated, record)
}

func (f *FakeAPI) updateItem(w http.ResponseWriter, r *http.Request) {
	var record ItemRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := pathID(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.items[id]
	if !ok {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	record.ID = id
	if record.DisplayOrder == 0 {
		record.DisplayOrder = existing.DisplayOrder
	}
	f.items[id] = record
	writeJSON(w, http.StatusOK, record)
}

func (f *FakeAPI) deleteItem(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	delete(f.items, id)
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) reorderItems(w http.ResponseWriter, r *http.Request) {
	var batch []struct {
		ID           int `json:"id"`
		DisplayOrder int `json:"displayOrder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	// The batch must cover the whole list; partial reorders are rejected
	// to keep displayOrder contiguous.
	if len(batch) != len(f.items) {
		http.Error(w, fmt.Sprintf("reorder batch covers %d of %d items", len(batch), len(f.items)), http.StatusBadRequest)
		return
	}
	for _, entry := range batch {
		if _, ok := f.items[entry.ID]; !ok {
			http.Error(w, "item not found", http.StatusBadRequest)
			return
		}
	}
	for _, entry := range batch {
		it := f.items[entry.ID]
		it.DisplayOrder = entry.DisplayOrder
		f.items[entry.ID] = it
	}
	w.WriteHeader(http.StatusOK)
}

func (f *FakeAPI) listMonth(w http.ResponseWriter, r *http.Request) {
	year := r.URL.Query().Get("year")
	month := r.URL.Query().Get("month")
	monthNum, _ := strconv.Atoi(month)
	prefix := fmt.Sprintf("%s-%02d-", year, monthNum)

	f.mu.Lock()
	defer f.mu.Unlock()
	occurrences := make([]OccurrenceRecord, 0)
	for _, occ := range f.occurrences {
		if len(occ.Date) >= len(prefix) && occ.Date[:len(prefix)] == prefix {
			if it, ok := f.items[occ.BudgetItemID]; ok {
				resolved := it
				occ.Item = &resolved
			}
			occurrences = append(occurrences, occ)
		}
	}
	sort.Slice(occurrences, func(a, b int) bool { return occurrences[a].ID < occurrences[b].ID })
	writeJSON(w, http.StatusOK, occurrences)
}

func (f *FakeAPI) createOccurrence(w http.ResponseWriter, r *http.Request) {
	var record OccurrenceRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	record.ID = f.nextID
	record.Item = nil
	f.occurrences[record.ID] = record
	writeJSON(w, http.StatusCreated, record)
}

func (f *FakeAPI) updateOccurrence(w http.ResponseWriter, r *http.Request) {
	var record OccurrenceRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := pathID(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.occurrences[id]; !ok {
		http.Error(w, "occurrence not found", http.StatusNotFound)
		return
	}
	record.ID = id
	record.Item = nil
	f.occurrences[id] = record
	writeJSON(w, http.StatusOK, record)
}

func (f *FakeAPI) deleteOccurrence(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.occurrences[id]; !ok {
		http.Error(w, "occurrence not found", http.StatusNotFound)
		return
	}
	delete(f.occurrences, id)
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) listAdjustments(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	adjustments := make([]AdjustmentRecord, 0, len(f.adjustments))
	for _, adj := range f.adjustments {
		adjustments = append(adjustments, adj)
	}
	// Newest first, matching the real service.
	sort.Slice(adjustments, func(a, b int) bool { return adjustments[a].Date > adjustments[b].Date })
	writeJSON(w, http.StatusOK, adjustments)
}

func (f *FakeAPI) setAdjustment(w http.ResponseWriter, r *http.Request) {
	var record AdjustmentRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.adjustments[record.Date]
	if ok {
		record.ID = existing.ID
	} else {
		f.nextID++
		record.ID = f.nextID
	}
	f.adjustments[record.Date] = record
	writeJSON(w, http.StatusCreated, record)
}

func (f *FakeAPI) deleteAdjustment(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	for date, adj := range f.adjustments {
		if adj.ID == id {
			delete(f.adjustments, date)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "adjustment not found", http.StatusNotFound)
}
