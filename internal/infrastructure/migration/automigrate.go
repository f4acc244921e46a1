package migration

import (
	"github.com/terplist/terplist/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persistence model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.StateModel{},
		&models.ProducerModel{},
		&models.StrainModel{},
		&models.VoteModel{},
		&models.RatingSnapshotModel{},
		&models.ProducerAdminModel{},
		&models.StateAdminModel{},
		&models.DropSubscriptionModel{},
	}
}
