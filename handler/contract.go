package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shekokarmahesh/contract-intel/middleware"
	"github.com/shekokarmahesh/contract-intel/model"
	"github.com/shekokarmahesh/contract-intel/pkg/logger"
	"github.com/shekokarmahesh/contract-intel/service"
)

var pdfMagic = []byte("%PDF")

// Dispatcher hands contracts off for asynchronous processing.
type Dispatcher interface {
	Enqueue(ctx context.Context, id string) error
}

type ContractHandler struct {
	store       service.ContractStore
	objects     *service.MinioService
	queue       Dispatcher
	maxFileSize int64
}

func NewContractHandler(store service.ContractStore, objects *service.MinioService, queue Dispatcher, maxFileSize int64) *ContractHandler {
	return &ContractHandler{
		store:       store,
		objects:     objects,
		queue:       queue,
		maxFileSize: maxFileSize,
	}
}

// Upload accepts a PDF, stores it, and queues it for extraction
func (h *ContractHandler) Upload(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are allowed"})
		return
	}

	if header.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is empty"})
		return
	}
	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File exceeds maximum size of %d bytes", h.maxFileSize),
		})
		return
	}

	// Check the PDF magic bytes, not just the extension
	magic := make([]byte, 4)
	if _, err := io.ReadFull(file, magic); err != nil || !bytes.Equal(magic, pdfMagic) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is not a valid PDF"})
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	contractID := uuid.New().String()
	objectKey := fmt.Sprintf("%s/%s/%s", tenant, contractID, header.Filename)

	ctx := c.Request.Context()
	if err := h.objects.UploadFile(ctx, objectKey, file, header.Size, "application/pdf"); err != nil {
		logger.Error(ctx, "failed to store uploaded contract", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	now := time.Now()
	contract := &model.Contract{
		ID:         contractID,
		Filename:   header.Filename,
		Tenant:     tenant,
		FileSize:   header.Size,
		ObjectKey:  objectKey,
		Status:     model.StatusPending,
		Progress:   0,
		UploadedAt: now,
		UpdatedAt:  now,
	}
	if err := h.store.Save(ctx, contract); err != nil {
		logger.Error(ctx, "failed to save contract record", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contract"})
		return
	}

	if err := h.queue.Enqueue(ctx, contractID); err != nil {
		logger.Error(ctx, "failed to queue contract", "contract_id", contractID, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Processing queue unavailable"})
		return
	}

	logger.Info(ctx, "contract uploaded", "contract_id", contractID, "filename", header.Filename)
	c.JSON(http.StatusOK, gin.H{
		"contract_id": contractID,
		"filename":    header.Filename,
		"status":      model.StatusPending,
	})
}

// GetStatus reports processing progress for one contract
func (h *ContractHandler) GetStatus(c *gin.Context) {
	contract := h.ownedContract(c)
	if contract == nil {
		return
	}

	resp := gin.H{
		"contract_id": contract.ID,
		"filename":    contract.Filename,
		"status":      contract.Status,
		"progress":    contract.Progress,
	}
	if contract.Status == model.StatusFailed && contract.ErrorMsg != "" {
		resp["error"] = contract.ErrorMsg
	}
	if contract.CompletedAt != nil {
		resp["completed_at"] = contract.CompletedAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns the full parsed contract data once processing has finished
func (h *ContractHandler) Get(c *gin.Context) {
	contract := h.ownedContract(c)
	if contract == nil {
		return
	}

	if contract.Status != model.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Contract data not available yet",
			"status":   contract.Status,
			"progress": contract.Progress,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contract_id":       contract.ID,
		"filename":          contract.Filename,
		"status":            contract.Status,
		"score":             contract.Score,
		"extracted_data":    contract.ExtractedData,
		"gaps":              contract.Gaps,
		"confidence_scores": contract.ConfidenceScores,
		"uploaded_at":       contract.UploadedAt.Format(time.RFC3339),
		"completed_at":      contract.CompletedAt.Format(time.RFC3339),
	})
}

type contractSummary struct {
	ContractID  string `json:"contract_id"`
	Filename    string `json:"filename"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	Score       int    `json:"score"`
	GapsCount   int    `json:"gaps_count"`
	Error       string `json:"error,omitempty"`
	UploadedAt  string `json:"uploaded_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// List returns the tenant's contracts, newest first, with pagination
func (h *ContractHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	opts := service.ListOptions{
		Status: c.Query("status"),
		Page:   parseIntQuery(c, "page", 1),
		Limit:  parseIntQuery(c, "limit", 10),
	}
	if opts.Status != "" && !model.ValidStatus(opts.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	contracts, total, err := h.store.List(c.Request.Context(), tenant, opts)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list contracts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contracts"})
		return
	}

	items := make([]contractSummary, 0, len(contracts))
	for _, ct := range contracts {
		item := contractSummary{
			ContractID: ct.ID,
			Filename:   ct.Filename,
			Status:     ct.Status,
			Progress:   ct.Progress,
			Score:      ct.Score,
			GapsCount:  len(ct.Gaps),
			UploadedAt: ct.UploadedAt.Format(time.RFC3339),
		}
		if ct.Status == model.StatusFailed {
			item.Error = ct.ErrorMsg
		}
		if ct.CompletedAt != nil {
			item.CompletedAt = ct.CompletedAt.Format(time.RFC3339)
		}
		items = append(items, item)
	}

	page, limit := opts.Page, opts.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"contracts": items,
		"pagination": gin.H{
			"current_page": page,
			"total_pages":  totalPages,
			"total_count":  total,
			"has_next":     page < totalPages,
			"has_prev":     page > 1,
		},
	})
}

// Download streams the original uploaded PDF back to the client
func (h *ContractHandler) Download(c *gin.Context) {
	contract := h.ownedContract(c)
	if contract == nil {
		return
	}

	data, err := h.objects.Fetch(c.Request.Context(), contract.ObjectKey)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to fetch contract file",
			"contract_id", contract.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", contract.Filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Delete removes a contract record and its stored file
func (h *ContractHandler) Delete(c *gin.Context) {
	contract := h.ownedContract(c)
	if contract == nil {
		return
	}

	ctx := c.Request.Context()

	// The record is the source of truth; losing the object is tolerable
	if err := h.objects.DeleteFile(ctx, contract.ObjectKey); err != nil {
		logger.Warn(ctx, "failed to delete stored file", "contract_id", contract.ID, "error", err)
	}

	if err := h.store.Delete(ctx, contract.ID); err != nil {
		logger.Error(ctx, "failed to delete contract", "contract_id", contract.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contract"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

// ownedContract loads the contract in the path and verifies tenant ownership.
// Writes the error response and returns nil when the lookup fails.
func (h *ContractHandler) ownedContract(c *gin.Context) *model.Contract {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract ID"})
		return nil
	}

	contract, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to load contract", "contract_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contract"})
		return nil
	}
	if contract == nil || contract.Tenant != middleware.GetTenant(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return nil
	}
	return contract
}

func parseIntQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
