package handlers

import (
	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/D-Oracle1/Consignment/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UploadDeliveryProof attaches a proof-of-delivery photo to a delivered
// shipment. Staff only; the photo lands in S3 or the local uploads dir.
func UploadDeliveryProof(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := c.GetUint("userId")

		var shipment models.Shipment
		if err := db.First(&shipment, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Shipment not found"})
			return
		}

		if shipment.Status != models.StatusDelivered {
			c.JSON(400, gin.H{"error": "Delivery proof can only be attached to delivered shipments"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(400, gin.H{"error": "Photo file is required"})
			return
		}

		url, err := services.UploadImage(file, "proofs")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to store delivery proof"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&shipment).Update("delivery_proof_url", url).Error; err != nil {
				return err
			}
			return services.LogStaffActivity(tx, staffID, "uploaded_delivery_proof", "shipment", shipment.ID,
				"Uploaded delivery proof for "+shipment.TrackingNumber,
				datatypes.JSONMap{
					"trackingNumber": shipment.TrackingNumber,
					"url":            url,
				})
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to store delivery proof"})
			return
		}

		c.JSON(200, gin.H{"deliveryProofUrl": url})
	}
}
