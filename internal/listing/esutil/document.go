package esutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	platformes "material_market_backend/internal/platform/elasticsearch"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Document is the indexed shape of a listing.
type Document struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Location      string    `json:"location"`
	Unit          string    `json:"unit"`
	Quantity      float64   `json:"quantity"`
	PricePerUnit  float64   `json:"price_per_unit"`
	SellerName    string    `json:"seller_name"`
	SellerCompany string    `json:"seller_company"`
	CreatedAt     time.Time `json:"created_at"`
}

// IDDocument pairs a document with its listing id.
type IDDocument struct {
	ID  string
	Doc Document
}

// IndexDocument writes a single document under id.
func IndexDocument(ctx context.Context, client *platformes.ESClientWrapper, id string, doc Document, refresh string) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshalling listing to JSON for ES: %w", err)
	}
	res, err := esapi.IndexRequest{
		Index:      platformes.ListingsIndexName,
		DocumentID: id,
		Body:       bytes.NewReader(body),
		Refresh:    refresh,
	}.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("failed to index listing %s: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("failed to index listing %s: status %s", id, res.Status())
	}
	return nil
}

// BulkResult counts per-item outcomes of a bulk request.
type BulkResult struct {
	Indexed int
	Failed  []string
}

// BulkIndex sends docs in one bulk request and inspects item-level errors.
func BulkIndex(ctx context.Context, client *platformes.ESClientWrapper, docs []IDDocument, refresh string) (BulkResult, error) {
	var result BulkResult
	if len(docs) == 0 {
		return result, nil
	}

	var body strings.Builder
	for _, d := range docs {
		docJSON, err := json.Marshal(d.Doc)
		if err != nil {
			result.Failed = append(result.Failed, d.ID)
			continue
		}
		action, _ := json.Marshal(map[string]interface{}{
			"index": map[string]string{"_index": platformes.ListingsIndexName, "_id": d.ID},
		})
		body.Write(action)
		body.WriteByte('\n')
		body.Write(docJSON)
		body.WriteByte('\n')
	}
	if body.Len() == 0 {
		return result, nil
	}

	res, err := esapi.BulkRequest{
		Body:    strings.NewReader(body.String()),
		Refresh: refresh,
	}.Do(ctx, client.Client)
	if err != nil {
		return result, fmt.Errorf("failed to send bulk request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return result, fmt.Errorf("bulk request returned status %s", res.Status())
	}

	var bulkResponse struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string                 `json:"_id"`
				Status int                    `json:"status"`
				Error  map[string]interface{} `json:"error,omitempty"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkResponse); err != nil {
		return result, fmt.Errorf("failed to parse bulk response: %w", err)
	}
	for _, item := range bulkResponse.Items {
		if item.Index.Error != nil {
			result.Failed = append(result.Failed, item.Index.ID)
			continue
		}
		result.Indexed++
	}
	return result, nil
}

// SearchIDs runs a free-text query over title, description and location
// and returns matching listing ids by relevance.
func SearchIDs(ctx context.Context, client *platformes.ESClientWrapper, text string, size int) ([]string, error) {
	query := map[string]interface{}{
		"size":    size,
		"_source": false,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  text,
				"type":   "phrase_prefix",
				"fields": []string{"title", "description", "location"},
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := esapi.SearchRequest{
		Index: []string{platformes.ListingsIndexName},
		Body:  bytes.NewReader(body),
	}.Do(ctx, client.Client)
	if err != nil {
		return nil, fmt.Errorf("listing search failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("listing search failed: status %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
