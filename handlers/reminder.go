package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"opsboard/config"
	"opsboard/models"
)

// GetAllReminders lists reminders with cursor pagination over date.
// Reminders always carry a date, so the cursor never has to deal with
// nulls.
func GetAllReminders(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := config.DB.Model(&models.Reminder{})
	query = params.ApplySearch(query, []string{"title", "notes"})
	if params.Date != nil {
		query = query.Where("date >= ?", *params.Date)
	}
	query = params.ApplyCursor(query)
	query = query.Order("date ASC").Order("created_at ASC")

	var reminders []models.Reminder
	if err := query.Limit(params.Limit + 1).Find(&reminders).Error; err != nil {
		writeDBError(w, err)
		return
	}

	nextCursor := ""
	if len(reminders) > params.Limit {
		reminders = reminders[:params.Limit]
		last := reminders[len(reminders)-1]
		lastDate := last.Date.Time()
		nextCursor = models.EncodeCursor(&lastDate, last.CreatedAt)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":        reminders,
		"next_cursor": nextCursor,
	})
}

func GetReminder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var reminder models.Reminder
	if err := config.DB.First(&reminder, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminder)
}

func CreateReminder(w http.ResponseWriter, r *http.Request) {
	var reminder models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&reminder); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if reminder.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if reminder.Date.Time().IsZero() {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	if err := config.DB.Create(&reminder).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(reminder)
}

func UpdateReminder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var reminder models.Reminder
	if err := config.DB.First(&reminder, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&reminder); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := config.DB.Save(&reminder).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminder)
}

func DeleteReminder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result := config.DB.Delete(&models.Reminder{}, "id = ?", id)
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
