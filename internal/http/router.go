package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"repair-backend/internal/handlers"
	"repair-backend/internal/middleware"
)

func NewRouter(
	serviceHandler *handlers.ServiceHandler,
	laptopHandler *handlers.LaptopHandler,
	vendorHandler *handlers.VendorHandler,
	billingHandler *handlers.BillingHandler,
	changeLogHandler *handlers.ChangeLogHandler,
	backupHandler *handlers.BackupHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Individual device service records
	servicesAPI := r.PathPrefix("/api/services").Subrouter()
	servicesAPI.HandleFunc("", serviceHandler.ListServices).Methods("GET")
	servicesAPI.HandleFunc("", serviceHandler.CreateService).Methods("POST")
	servicesAPI.HandleFunc("/{id}", serviceHandler.GetService).Methods("GET")
	servicesAPI.HandleFunc("/{id}", serviceHandler.UpdateService).Methods("PUT")
	servicesAPI.HandleFunc("/{id}", serviceHandler.DeleteService).Methods("DELETE")
	servicesAPI.HandleFunc("/{id}/bill", billingHandler.CreateServiceBill).Methods("POST")

	// Laptop records
	laptopsAPI := r.PathPrefix("/api/laptops").Subrouter()
	laptopsAPI.HandleFunc("", laptopHandler.ListLaptops).Methods("GET")
	laptopsAPI.HandleFunc("", laptopHandler.CreateLaptop).Methods("POST")
	laptopsAPI.HandleFunc("/{id}", laptopHandler.GetLaptop).Methods("GET")
	laptopsAPI.HandleFunc("/{id}", laptopHandler.UpdateLaptop).Methods("PUT")
	laptopsAPI.HandleFunc("/{id}", laptopHandler.DeleteLaptop).Methods("DELETE")
	laptopsAPI.HandleFunc("/{id}/bill", billingHandler.CreateLaptopBill).Methods("POST")

	// Vendor accounts, their phones and bills
	vendorsAPI := r.PathPrefix("/api/vendors").Subrouter()
	vendorsAPI.HandleFunc("", vendorHandler.ListVendors).Methods("GET")
	vendorsAPI.HandleFunc("", vendorHandler.CreateVendor).Methods("POST")
	vendorsAPI.HandleFunc("/{id}", vendorHandler.GetVendor).Methods("GET")
	vendorsAPI.HandleFunc("/{id}", vendorHandler.UpdateVendor).Methods("PUT")
	vendorsAPI.HandleFunc("/{id}", vendorHandler.DeleteVendor).Methods("DELETE")
	vendorsAPI.HandleFunc("/{id}/phones", vendorHandler.AddPhone).Methods("POST")
	vendorsAPI.HandleFunc("/{id}/phones/{phoneId}/status", vendorHandler.UpdatePhoneStatus).Methods("PUT")
	vendorsAPI.HandleFunc("/{id}/bills", billingHandler.CreateVendorBill).Methods("POST")
	vendorsAPI.HandleFunc("/{id}/bills/{billId}", billingHandler.EditVendorBill).Methods("PUT")

	// Audit and backup
	r.HandleFunc("/api/changelog", changeLogHandler.ListEntries).Methods("GET")
	r.HandleFunc("/api/snapshot", backupHandler.ExportSnapshot).Methods("GET")
	r.HandleFunc("/api/backup", backupHandler.RunBackup).Methods("POST")

	// Middleware chain
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.APILogging)

	return r
}
