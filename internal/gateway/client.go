package gateway

import (
	"context"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
)

type TokenRequest struct {
	OrderID       string
	GrossAmount   int64
	CustomerName  string
	CustomerEmail string
	ItemID        string
	ItemName      string
	UnitPrice     int64
	Qty           int32
}

type Token struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Client is the slice of the payment gateway the transaction engine consumes.
type Client interface {
	RequestToken(ctx context.Context, req TokenRequest) (*Token, error)
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
}

// SnapClient wraps the Midtrans Snap API.
type SnapClient struct {
	snap      snap.Client
	serverKey string
}

func NewSnapClient(serverKey string, production bool) *SnapClient {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	var c snap.Client
	c.New(serverKey, env)

	return &SnapClient{snap: c, serverKey: serverKey}
}

// RequestToken asks Snap for a hosted-payment token. The SDK call is not
// context-aware, so it runs on its own goroutine and the caller's deadline
// wins the select.
func (c *SnapClient) RequestToken(ctx context.Context, req TokenRequest) (*Token, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.ItemID,
				Name:  req.ItemName,
				Price: req.UnitPrice,
				Qty:   req.Qty,
			},
		},
	}

	type result struct {
		resp *snap.Response
		err  *midtrans.Error
	}

	ch := make(chan result, 1)
	go func() {
		resp, err := c.snap.CreateTransaction(snapReq)
		ch <- result{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, apperr.Upstream("snap token request timed out", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, apperr.Upstream("snap token request failed", r.err)
		}
		return &Token{Token: r.resp.Token, RedirectURL: r.resp.RedirectURL}, nil
	}
}

func (c *SnapClient) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	return VerifySignature(orderID, statusCode, grossAmount, signature, c.serverKey)
}
