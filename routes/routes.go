package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"opsboard/handlers"
	"opsboard/middleware"
	"opsboard/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.Handle("/token", middleware.JWTMiddleware(
		http.HandlerFunc(handlers.GetCurrentUser))).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")

	registerLookupRoutes(api)
	registerScheduleRoutes(api)
	registerDocumentRoutes(api)
	registerFileRoutes(api)

	// =====================================================
	// Admin Routes (require the admin flag)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	registerAdminRoutes(admin)

	return r
}

// crudHandlers holds handlers for a CRUD resource
type crudHandlers struct {
	getAll func(http.ResponseWriter, *http.Request)
	create func(http.ResponseWriter, *http.Request)
	getOne func(http.ResponseWriter, *http.Request)
	update func(http.ResponseWriter, *http.Request)
	delete func(http.ResponseWriter, *http.Request)
}

// registerCRUDRoutes registers standard CRUD routes for a resource.
// Deletes go through the admin gate; everything else only needs a
// valid token. Extra fixed-path routes ("/purchase/grouped") must be
// registered before this so "{id}" does not swallow them.
func registerCRUDRoutes(router *mux.Router, path string, h crudHandlers) {
	router.HandleFunc(path, h.getAll).Methods("GET")
	router.HandleFunc(path, h.create).Methods("POST")
	router.HandleFunc(path+"/{id}", h.getOne).Methods("GET")
	router.HandleFunc(path+"/{id}", h.update).Methods("PUT")
	router.Handle(path+"/{id}", middleware.RequireAdmin(
		http.HandlerFunc(h.delete))).Methods("DELETE")
}

func crudFor[T any](res *handlers.Resource[T]) crudHandlers {
	return crudHandlers{
		getAll: res.List,
		create: res.Create,
		getOne: res.GetOne,
		update: res.Update,
		delete: res.Delete,
	}
}

// registerLookupRoutes registers the plain CRUD entities. Each gets a
// typed Resource instance; the row type is fixed at compile time.
func registerLookupRoutes(api *mux.Router) {
	contactSort := map[string]bool{"name": true, "created_at": true, "updated_at": true}

	registerCRUDRoutes(api, "/client", crudFor(&handlers.Resource[models.Client]{
		SearchColumns: []string{"name", "phone", "email"},
		SortAllowed:   contactSort,
		DefaultSort:   "name",
	}))
	registerCRUDRoutes(api, "/supplier", crudFor(&handlers.Resource[models.Supplier]{
		SearchColumns: []string{"name", "phone", "email"},
		SortAllowed:   contactSort,
		DefaultSort:   "name",
	}))
	registerCRUDRoutes(api, "/product", crudFor(&handlers.Resource[models.Product]{
		SearchColumns: []string{"name"},
		SortAllowed:   contactSort,
		DefaultSort:   "name",
		FKParams:      map[string]string{"unitId": "unit_id"},
		Preloads:      []string{"Unit"},
	}))
	registerCRUDRoutes(api, "/unit", crudFor(&handlers.Resource[models.Unit]{
		SearchColumns: []string{"name"},
		SortAllowed:   contactSort,
		DefaultSort:   "name",
	}))
	registerCRUDRoutes(api, "/pickup", crudFor(&handlers.Resource[models.Pickup]{
		SearchColumns: []string{"name", "address"},
		SortAllowed:   contactSort,
		DefaultSort:   "name",
	}))
	registerCRUDRoutes(api, "/entity", crudFor(&handlers.Resource[models.Entity]{
		SearchColumns: []string{"name", "kind", "phone"},
		SortAllowed:   map[string]bool{"name": true, "kind": true, "created_at": true},
		DefaultSort:   "name",
	}))
	registerCRUDRoutes(api, "/refill", crudFor(&handlers.Resource[models.Refill]{
		SearchColumns: []string{"notes"},
		SortAllowed:   map[string]bool{"quantity": true, "created_at": true},
		DefaultSort:   "created_at",
		FKParams:      map[string]string{"siteId": "site_id", "productId": "product_id"},
		Preloads:      []string{"Product"},
	}))
}

// registerScheduleRoutes registers the entities with schedule
// semantics: day/date filters, grouped views, item reconciliation.
func registerScheduleRoutes(api *mux.Router) {
	api.HandleFunc("/purchase/grouped", handlers.GetGroupedPurchases).Methods("GET")
	api.HandleFunc("/purchase/export", handlers.ExportPurchases).Methods("GET")
	registerCRUDRoutes(api, "/purchase", crudHandlers{
		getAll: handlers.GetAllPurchases,
		create: handlers.CreatePurchase,
		getOne: handlers.GetPurchase,
		update: handlers.UpdatePurchase,
		delete: handlers.DeletePurchase,
	})

	registerCRUDRoutes(api, "/order", crudHandlers{
		getAll: handlers.GetAllOrders,
		create: handlers.CreateOrder,
		getOne: handlers.GetOrder,
		update: handlers.UpdateOrder,
		delete: handlers.DeleteOrder,
	})

	api.HandleFunc("/task/grouped", handlers.GetGroupedTasks).Methods("GET")
	registerCRUDRoutes(api, "/task", crudHandlers{
		getAll: handlers.GetAllTasks,
		create: handlers.CreateTask,
		getOne: handlers.GetTask,
		update: handlers.UpdateTask,
		delete: handlers.DeleteTask,
	})

	registerCRUDRoutes(api, "/reminder", crudHandlers{
		getAll: handlers.GetAllReminders,
		create: handlers.CreateReminder,
		getOne: handlers.GetReminder,
		update: handlers.UpdateReminder,
		delete: handlers.DeleteReminder,
	})

	api.HandleFunc("/site/grouped", handlers.GetGroupedSites).Methods("GET")
	registerCRUDRoutes(api, "/site", crudHandlers{
		getAll: handlers.GetAllSites,
		create: handlers.CreateSite,
		getOne: handlers.GetSite,
		update: handlers.UpdateSite,
		delete: handlers.DeleteSite,
	})
}

// registerDocumentRoutes registers document metadata plus upload.
func registerDocumentRoutes(api *mux.Router) {
	api.HandleFunc("/document/upload", handlers.UploadDocument).Methods("POST")
	api.HandleFunc("/document", handlers.GetAllDocuments).Methods("GET")
	api.HandleFunc("/document/{id}", handlers.GetDocument).Methods("GET")
	api.HandleFunc("/document/{id}", handlers.UpdateDocument).Methods("PUT")
	api.Handle("/document/{id}", middleware.RequireAdmin(
		http.HandlerFunc(handlers.DeleteDocument))).Methods("DELETE")
}

// registerFileRoutes registers the bare attachment upload endpoint
func registerFileRoutes(api *mux.Router) {
	api.HandleFunc("/files/upload", handlers.UploadFile).Methods("POST")
}

// registerAdminRoutes registers user management
func registerAdminRoutes(admin *mux.Router) {
	admin.HandleFunc("/users", handlers.GetAllUsers).Methods("GET")
	admin.HandleFunc("/users", handlers.Register).Methods("POST")
	admin.HandleFunc("/users/{id}", handlers.UpdateUser).Methods("PUT")
	admin.HandleFunc("/users/{id}", handlers.DeleteUser).Methods("DELETE")
}
