package contracts

type WebhookDispatcher interface {
	SetWebhookUrl(sheetId string, reference string, webhookUrl string)
	GetWebhookUrl(sheetId string, reference string) string
	Notify(sheetId string, cells []*Cell)
	Start()
	Close()
}
