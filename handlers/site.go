package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"opsboard/config"
	"opsboard/models"
	"opsboard/pkg/schedule"
)

var siteSortAllowed = map[string]bool{
	"site_name": true, "day": true, "supervisor": true, "created_at": true,
}

func preloadSite(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Refills").
		Preload("Refills.Product")
}

func GetAllSites(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := config.DB.Model(&models.Site{})
	query = params.ApplySearch(query, []string{"site_name", "supervisor"})
	if params.Day != "" && params.Day != models.DayAll {
		query = query.Where("day = ?", params.Day)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeDBError(w, err)
		return
	}

	var sites []models.Site
	query = params.ApplySort(query, siteSortAllowed, "site_name")
	query = params.ApplyPagination(query)
	if err := preloadSite(query).Find(&sites).Error; err != nil {
		writeDBError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": sites,
		"meta": params.Meta(total),
	})
}

// GetGroupedSites returns the filtered sites in schedule-view groups.
// Sites are always day-recurring, so every site lands in today's
// group; the value of the endpoint is the shared heading format and
// the day filter.
func GetGroupedSites(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := config.DB.Model(&models.Site{})
	query = params.ApplySearch(query, []string{"site_name", "supervisor"})
	if params.Day != "" && params.Day != models.DayAll {
		query = query.Where("day = ?", params.Day)
	}
	query = query.Order("site_name ASC")

	var sites []models.Site
	if err := preloadSite(query).Find(&sites).Error; err != nil {
		writeDBError(w, err)
		return
	}

	groups := schedule.GroupByDate(sites, func(models.Site) *time.Time {
		return nil
	}, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"groups": groups,
		"count":  len(sites),
	})
}

func GetSite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var site models.Site
	if err := preloadSite(config.DB).First(&site, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(site)
}

func CreateSite(w http.ResponseWriter, r *http.Request) {
	var site models.Site
	if err := json.NewDecoder(r.Body).Decode(&site); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if site.SiteName == "" {
		http.Error(w, "siteName is required", http.StatusBadRequest)
		return
	}
	// Sites are always day-recurring: day is required, never null.
	if !site.Day.Valid() {
		http.Error(w, "invalid day", http.StatusBadRequest)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&site).Error
	})
	if err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(site)
}

func UpdateSite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var site models.Site
	if err := config.DB.First(&site, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&site); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !site.Day.Valid() {
		http.Error(w, "invalid day", http.StatusBadRequest)
		return
	}

	if err := config.DB.Omit("Refills").Save(&site).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(site)
}

func DeleteSite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result := config.DB.Delete(&models.Site{}, "id = ?", id)
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
