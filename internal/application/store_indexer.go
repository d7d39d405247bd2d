package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
)

// StoreIndexer mirrors stores into an Elasticsearch index so the search
// endpoint can serve from it. Indexing is best effort; the database stays
// authoritative and a nil indexer is a no-op.
type StoreIndexer struct {
	ES        *elasticsearch.Client
	IndexName string
	Logger    *logrus.Logger
}

func NewStoreIndexer(es *elasticsearch.Client, index string, logger *logrus.Logger) *StoreIndexer {
	return &StoreIndexer{ES: es, IndexName: index, Logger: logger}
}

func (ix *StoreIndexer) enabled() bool {
	return ix != nil && ix.ES != nil && ix.IndexName != ""
}

func (ix *StoreIndexer) Index(ctx context.Context, st *entity.Store) {
	if !ix.enabled() {
		return
	}
	doc := map[string]any{
		"id":         st.ID,
		"name":       st.Name,
		"email":      st.Email,
		"address":    st.Address,
		"created_at": st.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: ix.IndexName, DocumentID: st.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		if ix.Logger != nil {
			ix.Logger.WithError(err).WithField("store_id", st.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && ix.Logger != nil {
		ix.Logger.WithField("status", res.Status()).WithField("store_id", st.ID).Warn("es index response error")
	}
}

func (ix *StoreIndexer) Remove(ctx context.Context, storeID string) {
	if !ix.enabled() {
		return
	}
	req := esapi.DeleteRequest{Index: ix.IndexName, DocumentID: storeID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		if ix.Logger != nil {
			ix.Logger.WithError(err).WithField("store_id", storeID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match over name and address. The boolean reports
// whether the indexer was able to answer at all; on false the caller should
// fall back to the database.
func (ix *StoreIndexer) Search(ctx context.Context, q string, size int) ([]map[string]any, bool) {
	if !ix.enabled() {
		return nil, false
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "address"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(c),
		ix.ES.Search.WithIndex(ix.IndexName),
		ix.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		if ix.Logger != nil {
			ix.Logger.WithError(err).Warn("es search failed")
		}
		return nil, false
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, false
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, false
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, true
}
