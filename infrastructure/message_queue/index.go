package messagequeue

import (
	"hrms.io/infrastructure/message_queue/asynq"
	mq_types "hrms.io/infrastructure/message_queue/types"
)

var broker = &asynq.AsynqBroker{}

var TaskQueue mq_types.TaskQueueBroker = broker

func StartQueue() {
	TaskQueue.Start()
}

func StopQueue() {
	broker.Shutdown()
}
