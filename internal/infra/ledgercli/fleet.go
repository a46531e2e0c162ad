package ledgercli

import (
	"context"
	"fmt"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

// Fleet is a multi-chain view over the per-chain clients, converting wire
// types to domain types for the app services.
type Fleet struct {
	clients map[string]*Client
}

func NewFleet(clients map[string]*Client) *Fleet {
	return &Fleet{clients: clients}
}

func (f *Fleet) client(chain string) (*Client, error) {
	client, ok := f.clients[chain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChainNotConfigured, chain)
	}
	return client, nil
}

func (f *Fleet) BlockCount(ctx context.Context, chain string) (int64, error) {
	client, err := f.client(chain)
	if err != nil {
		return 0, err
	}
	return client.GetBlockCount(ctx)
}

func (f *Fleet) BlockByHash(ctx context.Context, chain, hash string) (domain.Block, error) {
	client, err := f.client(chain)
	if err != nil {
		return domain.Block{}, err
	}
	block, err := client.GetBlock(ctx, hash)
	if err != nil {
		return domain.Block{}, err
	}
	return toDomainBlock(block), nil
}

func (f *Fleet) BlockByHeight(ctx context.Context, chain string, height int64) (domain.Block, error) {
	client, err := f.client(chain)
	if err != nil {
		return domain.Block{}, err
	}
	block, err := client.GetBlockByHeight(ctx, height)
	if err != nil {
		return domain.Block{}, err
	}
	return toDomainBlock(block), nil
}

func (f *Fleet) Status(ctx context.Context, chain string) (domain.NodeStatus, error) {
	client, err := f.client(chain)
	if err != nil {
		return domain.NodeStatus{}, err
	}
	info, err := client.GetInfo(ctx)
	if err != nil {
		return domain.NodeStatus{}, err
	}
	peers, err := client.GetPeerCount(ctx)
	if err != nil {
		return domain.NodeStatus{}, err
	}
	return domain.NodeStatus{
		Chain:   chain,
		Version: info.Version,
		Blocks:  info.Blocks,
		Peers:   peers,
	}, nil
}

func toDomainBlock(b Block) domain.Block {
	return domain.Block{
		Hash:       b.Hash,
		Height:     b.Height,
		MerkleRoot: b.MerkleRoot,
		Time:       b.Time,
		TxIDs:      b.Tx,
	}
}
