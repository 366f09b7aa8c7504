package check

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/services/rabbitmq"
	"github.com/AliaksandrTarashkevich/ppianieal/services/trackLog"

	"github.com/gin-gonic/gin"
)

// QueueConnectionName is the pooled AMQP connection the probe inspects.
const QueueConnectionName = "nutrition"

type AliveResponse struct {
	Success  bool      `json:"success"`
	Messsage string    `json:"message"`
	Info     CheckInfo `json:"info"`
}

type CheckInfo struct {
	Queues         []string `json:"queue"`
	RoutineNum     int      `json:"routine_num"`
	ScheduledUsers int      `json:"scheduled_users"`
}

// ScheduleCounter reports how many users have reminders.
type ScheduleCounter interface {
	Count() int
}

func CheckAlive(scheduler ScheduleCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		resMsg := "main thread alive"
		checkInfo := CheckInfo{}

		// without a queue, jobs run in process and there is nothing to inspect
		if rabbitConn := rabbitmq.GetConnection(QueueConnectionName); rabbitConn != nil {
			resMsg = inspectQueue(rabbitConn, &checkInfo, resMsg)
		}

		if scheduler != nil {
			checkInfo.ScheduledUsers = scheduler.Count()
		}
		checkInfo.RoutineNum = runtime.NumGoroutine()
		trackLog.Info(fmt.Sprintf("goroutine number: %d, scheduled users: %d", checkInfo.RoutineNum, checkInfo.ScheduledUsers), false)

		c.JSON(http.StatusOK, AliveResponse{true, resMsg, checkInfo})
	}
}

func inspectQueue(rabbitConn *rabbitmq.Connection, checkInfo *CheckInfo, resMsg string) string {
	if rabbitConn.Conn == nil {
		resMsg = "Api detect Connection lost, Reconnecting.."
		trackLog.Error(resMsg, true)
		if err := rabbitConn.Reconnect(); err != nil {
			resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
			trackLog.Error(resMsg, true)
			return resMsg
		}
	}

	if rabbitConn.Channel != nil {
		for _, q := range rabbitConn.Queues {
			queue, queueErr := rabbitConn.Channel.QueueInspect(q)
			if queueErr != nil {
				resMsg = fmt.Sprintf("Queue[%s] error: %s", q, queueErr.Error())
				trackLog.Error(resMsg, true)
				continue
			}
			queueJson, _ := json.Marshal(queue)
			checkInfo.Queues = append(checkInfo.Queues, string(queueJson))
		}
	} else {
		resMsg = "Channel get fail"
		trackLog.Error(resMsg, true)
	}

	// give a dropped connection a second to report itself
	select {
	case err := <-rabbitConn.ApiErr:
		trackLog.Error(fmt.Sprintf("api error: %s", err.Error()), true)
		if err := rabbitConn.Reconnect(); err != nil {
			resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
			trackLog.Error(resMsg, true)
		}
	case <-time.After(time.Second * 1):
	}
	return resMsg
}
