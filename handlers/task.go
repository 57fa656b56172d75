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

var taskFKParams = map[string]string{
	"productId":  "product_id",
	"orderId":    "order_id",
	"entityId":   "entity_id",
	"documentId": "document_id",
}

func taskQuery(params *models.ListParams) *gorm.DB {
	query := config.DB.Model(&models.Task{})
	query = params.ApplySearch(query, []string{"title"})
	query = params.ApplyFilters(query)
	query = params.ApplyDayDate(query)
	return query
}

func preloadTask(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Product").
		Preload("Order").
		Preload("Entity").
		Preload("Document")
}

// GetAllTasks lists tasks with keyset pagination ordered
// `date ASC NULLS FIRST, created_at ASC`: the day-recurring (undated)
// block comes first, then the dated rows. The cursor records both the
// date position and created_at, so paging walks the whole undated
// block even when it spans multiple pages.
func GetAllTasks(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, taskFKParams)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := params.ApplyCursor(taskQuery(params))
	query = query.Order("date ASC NULLS FIRST").Order("created_at ASC")

	// Fetch one extra row to know whether another page exists.
	var tasks []models.Task
	if err := preloadTask(query).Limit(params.Limit + 1).Find(&tasks).Error; err != nil {
		writeDBError(w, err)
		return
	}

	tasks, nextCursor := taskPage(tasks, params.Limit)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":        tasks,
		"next_cursor": nextCursor,
	})
}

// taskPage trims the over-fetched page and builds the next cursor.
// The cursor carries the last row's date position plus its created_at,
// so a page that ends inside the undated (day-recurring) block resumes
// at the next undated row rather than skipping to the dated ones.
func taskPage(tasks []models.Task, limit int) ([]models.Task, string) {
	if len(tasks) <= limit {
		return tasks, ""
	}
	tasks = tasks[:limit]
	last := tasks[len(tasks)-1]
	return tasks, models.EncodeCursor(last.ScheduleDate(), last.CreatedAt)
}

// GetGroupedTasks returns the filtered tasks bucketed by calendar day
// for the schedule view.
func GetGroupedTasks(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, taskFKParams)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := config.DB.Model(&models.Task{})
	query = params.ApplySearch(query, []string{"title"})
	query = params.ApplyFilters(query)
	query = query.Order("date ASC NULLS FIRST")

	var tasks []models.Task
	if err := preloadTask(query).Find(&tasks).Error; err != nil {
		writeDBError(w, err)
		return
	}

	tasks = schedule.FilterRecords(tasks,
		func(t models.Task) *models.Day { return t.Day },
		func(t models.Task) *time.Time { return t.ScheduleDate() },
		schedule.Filter{Day: params.Day, Date: params.Date})

	groups := schedule.GroupByDate(tasks, func(t models.Task) *time.Time {
		return t.ScheduleDate()
	}, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"groups": groups,
		"count":  len(tasks),
	})
}

func GetTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var task models.Task
	if err := preloadTask(config.DB).First(&task, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func CreateTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if task.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if task.Day != nil && !task.Day.Valid() {
		http.Error(w, "invalid day", http.StatusBadRequest)
		return
	}

	if err := config.DB.Create(&task).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
}

func UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var task models.Task
	if err := config.DB.First(&task, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if task.Day != nil && !task.Day.Valid() {
		http.Error(w, "invalid day", http.StatusBadRequest)
		return
	}

	if err := config.DB.Save(&task).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result := config.DB.Delete(&models.Task{}, "id = ?", id)
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
