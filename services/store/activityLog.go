package store

import (
	"encoding/json"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/models"
)

// InsertActivityLog records a job outcome in the activity_log table.
func (s *StoreService) InsertActivityLog(logName string, causerID int64, data interface{}) error {

	activityLogJSON, err := json.Marshal(data)
	if err != nil {
		return err
	}

	insertTime := time.Now()
	var activityLogEntity models.ActivityLog
	activityLogEntity.CreatedAt = &insertTime
	activityLogEntity.UpdatedAt = &insertTime
	activityLogEntity.CauserID = causerID
	activityLogEntity.CauserType = "user"
	activityLogEntity.LogName = logName
	activityLogEntity.Description = "nutrition-bot job"
	activityLogEntity.Properties = string(activityLogJSON)

	return s.db.Create(&activityLogEntity).Error
}
