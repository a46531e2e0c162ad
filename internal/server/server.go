// Package server exposes the relay's HTTP surface. Every response carries a
// success flag; failures add a message and the underlying error string.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/merkle"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/transfer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

type Server struct {
	relay      RelayService
	transfers  TransferService
	rules      RuleService
	sync       SyncService
	stats      StatsService
	blocks     BlockReader
	automation Automation
	logger     *slog.Logger
}

func New(relay RelayService, transfers TransferService, ruleService RuleService, sync SyncService, stats StatsService, blocks BlockReader, automation Automation, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		relay:      relay,
		transfers:  transfers,
		rules:      ruleService,
		sync:       sync,
		stats:      stats,
		blocks:     blocks,
		automation: automation,
		logger:     logger,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.POST("/relay/merkleroot", s.relayMerkleRoot)
	api.POST("/relay/verify", s.verifyTransaction)
	api.GET("/chain/:chainName/latest-block", s.latestBlock)
	api.POST("/transfer/asset", s.transferAsset)
	api.POST("/sync/merkle-roots", s.syncMerkleRoots)
	api.POST("/automation/block-verification", s.blockVerificationAutomation)
	api.POST("/rules/create", s.createRule)
	api.POST("/rules/process", s.processEvent)
	api.GET("/dashboard/stats", s.dashboardStats)

	router.GET("/health", s.health)
	return router
}

func ok(c *gin.Context, payload gin.H) {
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}

func (s *Server) fail(c *gin.Context, message string, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(message, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"success": false, "message": message, "error": err.Error()})
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body", "error": err.Error()})
}

func (s *Server) relayMerkleRoot(c *gin.Context) {
	var req struct {
		SourceChain string `json:"sourceChain"`
		BlockHash   string `json:"blockHash"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	result, err := s.relay.RelayBlock(c.Request.Context(), req.SourceChain, req.BlockHash)
	if err != nil {
		s.fail(c, "failed to relay merkle root", err)
		return
	}
	ok(c, gin.H{
		"key":       result.Key,
		"record":    result.Record,
		"mainTxId":  result.MainTxID,
		"localTxId": result.LocalTxID,
	})
}

func (s *Server) verifyTransaction(c *gin.Context) {
	var req struct {
		SourceChain   string             `json:"sourceChain"`
		BlockHash     string             `json:"blockHash"`
		TransactionID string             `json:"transactionId"`
		Proof         []merkle.ProofStep `json:"proof"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	result, err := s.relay.VerifyTransaction(c.Request.Context(), req.SourceChain, req.BlockHash, req.TransactionID, req.Proof)
	if err != nil {
		s.fail(c, "failed to verify transaction", err)
		return
	}
	ok(c, gin.H{"verification": result})
}

func (s *Server) latestBlock(c *gin.Context) {
	chain, err := domain.NormalizeChainName(c.Param("chainName"))
	if err != nil {
		s.fail(c, "unknown chain", err)
		return
	}

	height, err := s.blocks.BlockCount(c.Request.Context(), chain)
	if err != nil {
		s.fail(c, "failed to read chain height", err)
		return
	}
	block, err := s.blocks.BlockByHeight(c.Request.Context(), chain, height)
	if err != nil {
		s.fail(c, "failed to read latest block", err)
		return
	}
	ok(c, gin.H{"chain": chain, "block": block})
}

func (s *Server) transferAsset(c *gin.Context) {
	var req struct {
		SourceChain string         `json:"sourceChain"`
		TargetChain string         `json:"targetChain"`
		AssetName   string         `json:"assetName"`
		Quantity    float64        `json:"quantity"`
		Metadata    map[string]any `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	result, err := s.transfers.Transfer(c.Request.Context(), transfer.Request{
		SourceChain: req.SourceChain,
		TargetChain: req.TargetChain,
		AssetName:   req.AssetName,
		Quantity:    req.Quantity,
		Metadata:    req.Metadata,
	})
	if err != nil {
		s.fail(c, "asset transfer failed", err)
		return
	}
	ok(c, gin.H{"transfer": result})
}

func (s *Server) syncMerkleRoots(c *gin.Context) {
	reports := s.sync.SyncMerkleRoots(c.Request.Context())
	ok(c, gin.H{"chains": reports})
}

func (s *Server) blockVerificationAutomation(c *gin.Context) {
	var req struct {
		Action          string `json:"action"`
		IntervalMinutes int    `json:"intervalMinutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	switch req.Action {
	case "start":
		if req.IntervalMinutes <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "intervalMinutes must be greater than zero"})
			return
		}
		s.automation.Start(time.Duration(req.IntervalMinutes) * time.Minute)
	case "stop":
		s.automation.Stop()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "action must be start or stop"})
		return
	}

	ok(c, gin.H{
		"running":         s.automation.Running(),
		"intervalMinutes": int(s.automation.Interval() / time.Minute),
	})
}

func (s *Server) createRule(c *gin.Context) {
	var req struct {
		RuleName          string             `json:"ruleName"`
		Description       string             `json:"description"`
		TriggerConditions []domain.Condition `json:"triggerConditions"`
		Actions           []domain.Action    `json:"actions"`
		Enabled           *bool              `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	// Rules are enabled unless the caller says otherwise.
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	result, err := s.rules.CreateRule(c.Request.Context(), domain.Rule{
		RuleName:          req.RuleName,
		Description:       req.Description,
		TriggerConditions: req.TriggerConditions,
		Actions:           req.Actions,
		Enabled:           enabled,
	})
	if err != nil {
		s.fail(c, "failed to create rule", err)
		return
	}
	ok(c, gin.H{"ruleId": result.RuleID, "txId": result.TxID})
}

func (s *Server) processEvent(c *gin.Context) {
	var req struct {
		Event    map[string]any `json:"event"`
		TestOnly bool           `json:"testOnly"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	result, err := s.rules.ProcessEvent(c.Request.Context(), req.Event, req.TestOnly)
	if err != nil {
		s.fail(c, "failed to process event", err)
		return
	}
	ok(c, gin.H{"result": result})
}

func (s *Server) dashboardStats(c *gin.Context) {
	snapshot := s.stats.Snapshot(c.Request.Context())
	ok(c, gin.H{"stats": snapshot})
}

func (s *Server) health(c *gin.Context) {
	healthy, chains := s.stats.Health(c.Request.Context())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"success": healthy, "chains": chains})
}
