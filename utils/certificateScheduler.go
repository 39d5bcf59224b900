package utils

import (
	"fmt"
	"log"
	"time"

	"lms/certificate"
	"lms/database"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[CERT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcileCertificateFiles regenerates certificate PDFs whose backing file
// has gone missing from storage. Records are never touched; this is the
// batch counterpart of the lazy regeneration on download.
func reconcileCertificateFiles() {
	db := database.Database.Db

	var certificates []courseModels.Certificate
	if err := db.Find(&certificates).Error; err != nil {
		logScheduler("Error fetching certificates: " + err.Error())
		return
	}

	repaired := 0
	for i := range certificates {
		cert := &certificates[i]
		if err := certificate.Default.EnsureFile(cert); err != nil {
			logScheduler("Failed to repair certificate " + cert.CertificateID + ": " + err.Error())
			continue
		}
		repaired++
	}

	logScheduler(fmt.Sprintf("Reconciliation pass finished, checked: %d, healthy or repaired: %d", len(certificates), repaired))
}

// InitializeCertificateScheduler starts the nightly reconciliation sweep
func InitializeCertificateScheduler() *cron.Cron {
	c := cron.New()

	// Nightly at 03:00 server time
	if _, err := c.AddFunc("0 3 * * *", reconcileCertificateFiles); err != nil {
		logScheduler("Failed to register reconciliation job: " + err.Error())
		return c
	}

	c.Start()
	logScheduler("Certificate reconciliation scheduler initialized successfully")
	return c
}
