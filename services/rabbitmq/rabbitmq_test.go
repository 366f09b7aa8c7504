package rabbitmq

import (
	"io/ioutil"
	"testing"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

func TestJobRoundTrip(t *testing.T) {
	param := structs.JobQueueParam{Type: enums.JobDailySummary, UserID: 12, Date: "2024-03-12", Operate: enums.SystemOperate}
	publishing, err := encodeJob(param)
	if err != nil {
		t.Fatal(err)
	}
	if publishing.ContentType != "application/json" || publishing.DeliveryMode != amqp.Persistent || publishing.Type != enums.JobDailySummary {
		t.Fatalf("publishing = %+v", publishing)
	}

	decoded, err := DecodeJob(publishing.Body)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != param {
		t.Fatalf("decoded = %+v, want %+v", decoded, param)
	}
}

func TestDecodeJobRejectsIncomplete(t *testing.T) {
	for _, body := range []string{`not json`, `{"type":"daily-summary"}`, `{"user_id":3}`} {
		if _, err := DecodeJob([]byte(body)); err == nil {
			t.Errorf("DecodeJob(%s) succeeded", body)
		}
	}
}

func TestConnectionPool(t *testing.T) {
	logger := logrus.New()
	logger.Out = ioutil.Discard

	first := NewConnection("pool-test", []string{"jobs"}, logrus.NewEntry(logger))
	second := NewConnection("pool-test", []string{"other"}, logrus.NewEntry(logger))
	if first != second || GetConnection("pool-test") != first {
		t.Fatal("connections with one name must be shared")
	}
	if second.Queues[0] != "jobs" {
		t.Fatalf("queues = %v", second.Queues)
	}
}
