package asynq

import (
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"hrms.io/infrastructure/env"
	"hrms.io/infrastructure/logger"
	queue_tasks "hrms.io/infrastructure/message_queue/tasks"
	mq_types "hrms.io/infrastructure/message_queue/types"
)

type AsynqBroker struct {
	Client *asynq.Client
	server *asynq.Server
	once   sync.Once
	mu     sync.Mutex
}

func redisConnOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     env.String("REDIS_ADDR", "localhost:6379"),
		Password: env.String("REDIS_PASSWORD", ""),
		DB:       env.Int("REDIS_QUEUE_DB", 0),
	}
}

func (aq *AsynqBroker) client() *asynq.Client {
	aq.once.Do(func() {
		if aq.Client == nil {
			aq.Client = asynq.NewClient(redisConnOpt())
		}
	})
	return aq.Client
}

// Start blocks while the worker server runs.
func (aq *AsynqBroker) Start() {
	aq.client()

	server := asynq.NewServer(
		redisConnOpt(),
		asynq.Config{
			Concurrency: env.Int("QUEUE_CONCURRENCY", 20),
			Queues: map[string]int{
				string(mq_types.High):   7,
				string(mq_types.Medium): 2,
				string(mq_types.Low):    1,
			},
		},
	)

	aq.mu.Lock()
	aq.server = server
	aq.mu.Unlock()

	mux := asynq.NewServeMux()
	mux.HandleFunc(string(queue_tasks.HandleSecurityLockoutTaskName), queue_tasks.HandleSecurityLockoutTask)

	if err := server.Run(mux); err != nil {
		logger.Error("task queue server stopped", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

func (aq *AsynqBroker) Enqueue(task mq_types.QueueTask) {
	if task.TimeOut == 0 {
		task.TimeOut = 60
	}
	if task.MaxRetry == 0 {
		task.MaxRetry = 10
	}
	if task.Priority == "" {
		task.Priority = mq_types.Medium
	}
	_, err := aq.client().Enqueue(asynq.NewTask(string(task.Name), task.Payload),
		asynq.ProcessIn(time.Duration(task.ProcessIn)*time.Second),
		asynq.MaxRetry(task.MaxRetry),
		asynq.Timeout(time.Second*time.Duration(task.TimeOut)),
		asynq.Queue(string(task.Priority)))
	if err != nil {
		logger.Error("failed to enqueue task", logger.LoggerOptions{
			Key:  "task",
			Data: task.Name,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

// Shutdown stops the worker server and closes the client.
func (aq *AsynqBroker) Shutdown() {
	aq.mu.Lock()
	server := aq.server
	aq.mu.Unlock()
	if server != nil {
		server.Shutdown()
	}
	aq.client().Close()
}
