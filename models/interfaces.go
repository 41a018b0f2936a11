package models

import "context"

type MarketDataClient interface {
	Fetch(ctx context.Context, ticker string) (*Quote, error)
}
