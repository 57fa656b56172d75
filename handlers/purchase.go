package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"opsboard/config"
	"opsboard/models"
	"opsboard/pkg/schedule"
)

var purchaseSortAllowed = map[string]bool{
	"date": true, "day": true, "created_at": true, "updated_at": true,
}

var purchaseFKParams = map[string]string{
	"pickupId":   "pickup_id",
	"supplierId": "supplier_id",
}

// purchaseQuery builds the combined list predicate: search, FK
// equality, and the permissive day/date inclusion rules.
func purchaseQuery(params *models.ListParams) *gorm.DB {
	query := config.DB.Model(&models.Purchase{})
	query = params.ApplySearch(query, []string{"notes"})
	query = params.ApplyFilters(query)
	query = params.ApplyDayDate(query)
	return query
}

func preloadPurchase(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Pickup").
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Product")
}

func GetAllPurchases(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, purchaseFKParams)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := purchaseQuery(params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeDBError(w, err)
		return
	}

	var purchases []models.Purchase
	query = params.ApplySort(query, purchaseSortAllowed, "date")
	query = params.ApplyPagination(query)
	if err := preloadPurchase(query).Find(&purchases).Error; err != nil {
		writeDBError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": purchases,
		"meta": params.Meta(total),
	})
}

// GetGroupedPurchases returns the filtered purchases bucketed by
// calendar day for the schedule view. Day-recurring purchases land in
// today's group. The day/date rules run in memory through the
// resolver rather than in SQL.
func GetGroupedPurchases(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, purchaseFKParams)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := config.DB.Model(&models.Purchase{})
	query = params.ApplySearch(query, []string{"notes"})
	query = params.ApplyFilters(query)
	query = query.Order("date ASC NULLS FIRST")

	var purchases []models.Purchase
	if err := preloadPurchase(query).Find(&purchases).Error; err != nil {
		writeDBError(w, err)
		return
	}

	purchases = schedule.FilterRecords(purchases,
		func(p models.Purchase) *models.Day { return p.Day },
		func(p models.Purchase) *time.Time { return p.ScheduleDate() },
		schedule.Filter{Day: params.Day, Date: params.Date})

	groups := schedule.GroupByDate(purchases, func(p models.Purchase) *time.Time {
		return p.ScheduleDate()
	}, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"groups": groups,
		"count":  len(purchases),
	})
}

func GetPurchase(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var purchase models.Purchase
	if err := preloadPurchase(config.DB).First(&purchase, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(purchase)
}

func CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var purchase models.Purchase
	if err := json.NewDecoder(r.Body).Decode(&purchase); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if purchase.Day != nil && !purchase.Day.Valid() {
		http.Error(w, "invalid day", http.StatusBadRequest)
		return
	}

	// Purchase plus its items is a single atomic write.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&purchase).Error
	})
	if err != nil {
		writeDBError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(purchase)
}

func UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var existing models.Purchase
	if err := config.DB.Preload("Items").First(&existing, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}

	var in models.Purchase
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Day != nil && !in.Day.Valid() {
		http.Error(w, "invalid day", http.StatusBadRequest)
		return
	}

	existingIDs := make([]uuid.UUID, len(existing.Items))
	for i, item := range existing.Items {
		existingIDs[i] = item.ID
	}
	diff := diffItems(existingIDs, in.Items, func(item models.PurchaseItem) uuid.UUID {
		return item.ID
	})

	// Field updates and item reconciliation apply together or not at
	// all: omitted lines are deleted, resubmitted lines updated, new
	// lines inserted.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		existing.PickupID = in.PickupID
		existing.SupplierID = in.SupplierID
		existing.Date = in.Date
		existing.Day = in.Day
		existing.Notes = in.Notes
		existing.Items = nil
		if err := tx.Omit("Items").Save(&existing).Error; err != nil {
			return err
		}

		if len(diff.toDelete) > 0 {
			if err := tx.Where("purchase_id = ? AND id IN ?", existing.ID, diff.toDelete).
				Delete(&models.PurchaseItem{}).Error; err != nil {
				return err
			}
		}
		for _, item := range diff.toUpdate {
			if err := tx.Model(&models.PurchaseItem{}).
				Where("id = ? AND purchase_id = ?", item.ID, existing.ID).
				Updates(map[string]interface{}{
					"product_id": item.ProductID,
					"quantity":   item.Quantity,
				}).Error; err != nil {
				return err
			}
		}
		for _, item := range diff.toInsert {
			item.PurchaseID = existing.ID
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		writeDBError(w, err)
		return
	}

	var out models.Purchase
	if err := preloadPurchase(config.DB).First(&out, "id = ?", existing.ID).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result := config.DB.Delete(&models.Purchase{}, "id = ?", id)
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
