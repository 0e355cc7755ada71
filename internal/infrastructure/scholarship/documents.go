package scholarship

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/core/ports"
)

func (c *Client) DocumentTypes(ctx context.Context, category string) ([]domain.DocumentType, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	var types []domain.DocumentType
	_, err := c.doJSON(ctx, http.MethodGet, "/document-types", query, nil, &types, "document types")
	if err != nil {
		return nil, err
	}
	return types, nil
}

// MyDocuments is always cache-busted: verification state changes
// server-side independent of anything this client does.
func (c *Client) MyDocuments(ctx context.Context, category string) ([]domain.UploadedDocument, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	query.Set("nocache", strconv.FormatInt(time.Now().UnixMilli(), 10))

	var docs []domain.UploadedDocument
	_, err := c.doJSON(ctx, http.MethodGet, "/my-documents", query, nil, &docs, "my documents")
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// UploadDocument posts one multipart request per file. The body is
// buffered up front so a breaker-gated attempt never ships a half-read
// stream.
func (c *Client) UploadDocument(ctx context.Context, req ports.UploadRequest) (*domain.UploadedDocument, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", req.FileName)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, req.Body); err != nil {
		return nil, fmt.Errorf("read %s: %w", req.FileName, err)
	}
	if req.Keterangan != "" {
		if err := form.WriteField("keterangan", req.Keterangan); err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := form.WriteField("document_type", req.DocumentTypeCode); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if req.DocumentTypeID > 0 {
		if err := form.WriteField("document_type_id", strconv.Itoa(req.DocumentTypeID)); err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	const operation = "upload document"
	var doc domain.UploadedDocument
	err = c.exec.Execute(ctx, operation, func(ctx context.Context) error {
		httpReq, err := c.newRequest(ctx, http.MethodPost, "/upload-document/"+req.DocumentTypeCode, nil, token)
		if err != nil {
			return err
		}
		httpReq.Body = io.NopCloser(bytes.NewReader(buf.Bytes()))
		httpReq.ContentLength = int64(buf.Len())
		httpReq.Header.Set("Content-Type", form.FormDataContentType())
		httpReq.Header.Set("Accept", "application/json")

		env, _, err := c.roundTrip(httpReq, operation)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(env.Data, &doc); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
		return nil
	}, classifyAPIError)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) DeleteDocument(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/documents/%d", id), nil, nil, nil, "delete document")
	return err
}
