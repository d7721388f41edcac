package main

import (
	"bytes"
	json "github.com/bytedance/sonic"
	"github.com/kirill778/naviserv/contracts"
	"log"
	"net/http"
	"sync"
	"time"
)

const WebhookWorkersCount = 5

const webhookQueueSize = 20

const webhookTimeout = time.Second * 5

// SheetWebhooks webhook URL by cell reference
type SheetWebhooks map[string]string

type WebhookSendCommand struct {
	Webhook string
	Cell    *contracts.Cell
}

type WebhookDispatcher struct {
	queue     chan WebhookSendCommand
	done      chan struct{}
	closeOnce sync.Once
	webhooks  map[string]SheetWebhooks
	mutex     sync.RWMutex
	workers   sync.WaitGroup
	client    *http.Client
}

func NewWebhookDispatcher() *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:    make(chan WebhookSendCommand, webhookQueueSize),
		done:     make(chan struct{}),
		webhooks: map[string]SheetWebhooks{},
		client: &http.Client{
			Timeout: webhookTimeout,
		},
	}
}

// SetWebhookUrl subscribes webhookUrl to result changes of the cell, an empty url unsubscribes
func (manager *WebhookDispatcher) SetWebhookUrl(sheetId string, reference string, webhookUrl string) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	if _, ok := manager.webhooks[sheetId]; !ok {
		manager.webhooks[sheetId] = SheetWebhooks{}
	}

	if webhookUrl == "" {
		delete(manager.webhooks[sheetId], reference)
		if len(manager.webhooks[sheetId]) == 0 {
			delete(manager.webhooks, sheetId)
		}
	} else {
		manager.webhooks[sheetId][reference] = webhookUrl
	}
}

func (manager *WebhookDispatcher) GetWebhookUrl(sheetId string, reference string) string {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	return manager.webhooks[sheetId][reference]
}

func (manager *WebhookDispatcher) Notify(sheetId string, cells []*contracts.Cell) {
	commands := manager.makeCommands(sheetId, cells)
	if len(commands) == 0 {
		return
	}

	go manager.addToQueue(commands)
}

func (manager *WebhookDispatcher) makeCommands(sheetId string, cells []*contracts.Cell) []WebhookSendCommand {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	sheetWebhooks, ok := manager.webhooks[sheetId]
	if !ok {
		return nil
	}

	commands := make([]WebhookSendCommand, 0, len(cells))
	for _, cell := range cells {
		if webhook, ok := sheetWebhooks[cell.Reference]; ok {
			commands = append(commands, WebhookSendCommand{
				Webhook: webhook,
				Cell:    cell,
			})
		}
	}
	return commands
}

func (manager *WebhookDispatcher) addToQueue(commands []WebhookSendCommand) {
	for index, command := range commands {
		if manager.isClosed() {
			log.Printf("[webhook] dispatcher is closed, dropped %d notifications", len(commands)-index)
			return
		}

		select {
		case manager.queue <- command:
		case <-manager.done:
		}
	}
}

func (manager *WebhookDispatcher) Start() {
	for i := 0; i < WebhookWorkersCount; i++ {
		manager.workers.Add(1)
		go manager.runWebhookSenderWorker()
	}
}

// Close stops accepting notifications and waits until queued ones are sent
func (manager *WebhookDispatcher) Close() {
	manager.closeOnce.Do(func() {
		close(manager.done)
	})
	manager.workers.Wait()
}

func (manager *WebhookDispatcher) isClosed() bool {
	select {
	case <-manager.done:
		return true
	default:
		return false
	}
}

func (manager *WebhookDispatcher) runWebhookSenderWorker() {
	defer manager.workers.Done()

	for {
		select {
		case command := <-manager.queue:
			manager.send(command)
		case <-manager.done:
			manager.drainQueue()
			return
		}
	}
}

// drainQueue sends what was queued before Close
func (manager *WebhookDispatcher) drainQueue() {
	for {
		select {
		case command := <-manager.queue:
			manager.send(command)
		default:
			return
		}
	}
}

func (manager *WebhookDispatcher) send(command WebhookSendCommand) {
	payload, err := json.Marshal(command.Cell)
	if err != nil {
		log.Printf("[webhook] marshal %s: %s", command.Cell.Reference, err)
		return
	}

	response, err := manager.client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Printf("[webhook] send error: %s", err)
		return
	}
	defer response.Body.Close()

	if response.StatusCode >= 300 {
		log.Printf("[webhook] unexpected response HTTP status from %s: %s", command.Webhook, response.Status)
	}
}
