package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"opsboard/config"
	"opsboard/models"
)

var orderSortAllowed = map[string]bool{
	"date": true, "status": true, "created_at": true, "updated_at": true,
}

var orderFKParams = map[string]string{
	"clientId": "client_id",
}

func preloadOrder(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Client").
		Preload("Items").
		Preload("Items.Product")
}

func GetAllOrders(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, orderFKParams)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := config.DB.Model(&models.Order{})
	query = params.ApplySearch(query, []string{"notes", "status"})
	query = params.ApplyFilters(query)
	if params.Date != nil {
		query = query.Where("date >= ?", *params.Date)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeDBError(w, err)
		return
	}

	var orders []models.Order
	query = params.ApplySort(query, orderSortAllowed, "date")
	query = params.ApplyPagination(query)
	if err := preloadOrder(query).Find(&orders).Error; err != nil {
		writeDBError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": orders,
		"meta": params.Meta(total),
	})
}

func GetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var order models.Order
	if err := preloadOrder(config.DB).First(&order, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		writeDBError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var existing models.Order
	if err := config.DB.Preload("Items").First(&existing, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}

	var in models.Order
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	existingIDs := make([]uuid.UUID, len(existing.Items))
	for i, item := range existing.Items {
		existingIDs[i] = item.ID
	}
	diff := diffItems(existingIDs, in.Items, func(item models.OrderItem) uuid.UUID {
		return item.ID
	})

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		existing.ClientID = in.ClientID
		existing.Date = in.Date
		existing.Status = in.Status
		existing.Notes = in.Notes
		existing.Items = nil
		if err := tx.Omit("Items").Save(&existing).Error; err != nil {
			return err
		}

		if len(diff.toDelete) > 0 {
			if err := tx.Where("order_id = ? AND id IN ?", existing.ID, diff.toDelete).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
		}
		for _, item := range diff.toUpdate {
			if err := tx.Model(&models.OrderItem{}).
				Where("id = ? AND order_id = ?", item.ID, existing.ID).
				Updates(map[string]interface{}{
					"product_id": item.ProductID,
					"quantity":   item.Quantity,
					"price":      item.Price,
				}).Error; err != nil {
				return err
			}
		}
		for _, item := range diff.toInsert {
			item.OrderID = existing.ID
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

	var out models.Order
	if err := preloadOrder(config.DB).First(&out, "id = ?", existing.ID).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result := config.DB.Delete(&models.Order{}, "id = ?", id)
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
