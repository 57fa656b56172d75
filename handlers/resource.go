package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"opsboard/config"
	"opsboard/models"
)

// Resource is a typed CRUD handler for one entity. Each entity gets
// its own instance at startup (see routes), so there is no dynamic
// model dispatch: the compiler knows the row type everywhere.
type Resource[T any] struct {
	// SearchColumns are ORed together for the ?search= substring match.
	SearchColumns []string
	// SortAllowed is the ?sortBy= allow-list. Unknown fields fall back
	// to DefaultSort silently.
	SortAllowed map[string]bool
	DefaultSort string
	// FKParams maps query parameter names to column names for
	// foreign-key equality filters.
	FKParams map[string]string
	// Preloads are gorm associations loaded on reads.
	Preloads []string
}

// List handles GET /<entity> with offset pagination.
func (res *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, res.FKParams)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := config.DB.Model(new(T))
	query = params.ApplySearch(query, res.SearchColumns)
	query = params.ApplyFilters(query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeDBError(w, err)
		return
	}

	query = params.ApplySort(query, res.SortAllowed, res.DefaultSort)
	query = params.ApplyPagination(query)
	for _, preload := range res.Preloads {
		query = query.Preload(preload)
	}

	var items []T
	if err := query.Find(&items).Error; err != nil {
		writeDBError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": items,
		"meta": params.Meta(total),
	})
}

// Create handles POST /<entity>.
func (res *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := config.DB.Create(&item).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

// GetOne handles GET /<entity>/{id}.
func (res *Resource[T]) GetOne(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	query := config.DB
	for _, preload := range res.Preloads {
		query = query.Preload(preload)
	}

	var item T
	if err := query.First(&item, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// Update handles PUT /<entity>/{id}. The body is decoded over the
// stored row, so absent fields keep their current values.
func (res *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var item T
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := config.DB.Save(&item).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// Delete handles DELETE /<entity>/{id}.
func (res *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result := config.DB.Delete(new(T), "id = ?", id)
	if result.Error != nil {
		writeDBError(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
