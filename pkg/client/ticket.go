package client

import (
	"context"
	"net/url"
	"paysim/pkg/model"
	"time"
)

const TicketGeneratePath = "/api/ticket/generate"

type TicketClient struct {
	httpClient   *HttpClient
	serviceToken string
}

func NewTicketClient(baseURL, serviceToken string, timeout time.Duration) *TicketClient {
	return &TicketClient{
		httpClient:   NewHttpClient(baseURL, timeout),
		serviceToken: serviceToken,
	}
}

func (c *TicketClient) Generate(ctx context.Context, clientToken string) (*Response, error) {
	return c.httpClient.POSTWithHeaders(ctx, TicketGeneratePath, model.GenerateTicketRequest{
		ClientToken: clientToken,
	}, map[string]string{
		"Authorization": "Bearer " + c.serviceToken,
	})
}

func (c *TicketClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/ticket/id/"+url.PathEscape(id), map[string]string{
		"Authorization": "Bearer " + c.serviceToken,
	})
}

func (c *TicketClient) URL() string {
	return c.httpClient.BaseURL + TicketGeneratePath
}
