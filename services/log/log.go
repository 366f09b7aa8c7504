package log

import (
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/utils"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

const hostName = "nutrition-bot"

type LogService struct{}

// LoggerInit builds a logger writing to stdout and logs/<date>/<name>.log, plus the ELK and
// logstash hooks when they are enabled.
func (l *LogService) LoggerInit(name string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(level())

	if src, err := openLogFile(name); err != nil {
		fmt.Println(err.Error())
		logger.Out = os.Stdout
	} else {
		logger.Out = io.MultiWriter(os.Stdout, src)
	}

	if utils.EnvConfig.Log.ElkEnable == 1 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{utils.EnvConfig.Log.ElkURL},
		})
		if err != nil {
			logger.Debug(err.Error())
		} else if hook, err := elogrus.NewAsyncElasticHook(client, hostName, logrus.DebugLevel, utils.EnvConfig.Log.ElkIndex); err != nil {
			logger.Debug(err.Error())
		} else {
			logger.Hooks.Add(hook)
		}
	}

	if utils.EnvConfig.Log.LogstashEnable == 1 {
		conn, err := net.Dial("udp", utils.EnvConfig.Log.LogstashURL)
		if err != nil {
			logger.Debug(err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": hostName, "index": utils.EnvConfig.Log.LogstashIndex}))
			logger.Hooks.Add(hook)
		}
	}

	return logger
}

func level() logrus.Level {
	lvl, err := logrus.ParseLevel(utils.EnvConfig.Log.Level)
	if err != nil {
		return logrus.DebugLevel
	}
	return lvl
}

func openLogFile(name string) (*os.File, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	logFilePath := path.Join(dir, "logs", time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(logFilePath, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path.Join(logFilePath, name+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
