package dto

type ChangeBroadcastRequest struct {
	ChangeType string      `json:"changeType"`
	TableName  string      `json:"tableName"`
	Data       interface{} `json:"data,omitempty"`
}

type ChangeBroadcastResponse struct {
	Message    string `json:"message"`
	ChangeType string `json:"changeType"`
	TableName  string `json:"tableName"`
}

type MessageBroadcastRequest struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type MessageBroadcastResponse struct {
	Message     string `json:"message"`
	SentMessage string `json:"sentMessage"`
}
