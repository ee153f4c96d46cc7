package quote

import (
	"encoding/json"
	"time"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

// layerDoc is the persisted layer record. Required keys are pointers so a
// missing field is distinguishable from a zero. The legacy writer stored
// the development under "stratifica"; decoding accepts both keys.
type layerDoc struct {
	Diameter       *float64         `json:"diameter"`
	Length         *float64         `json:"length"`
	MaterialID     *int64           `json:"material_id"`
	MaterialName   string           `json:"material_name"`
	Turns          *int             `json:"turns"`
	Thickness      float64          `json:"thickness"`
	DiameterFinal  float64          `json:"diameter_final"`
	Development    *float64         `json:"development,omitempty"`
	Stratifica     *float64         `json:"stratifica,omitempty"`
	ManualOverride float64          `json:"manual_override"`
	UnitPrice      float64          `json:"unit_price"`
	UsedArea       float64          `json:"used_area"`
	TotalCost      float64          `json:"total_cost"`
	MarkedCost     float64          `json:"marked_cost"`
	IsTapered      bool             `json:"is_tapered"`
	Sections       []ConicalSection `json:"sections"`
}

// MarshalLayers serializes the ordered layer list to its JSON document.
func MarshalLayers(layers []Layer) (string, error) {
	docs := make([]layerDoc, len(layers))
	for i, l := range layers {
		diameter := l.DiameterIn
		length := l.LengthTotal
		materialID := l.MaterialID
		turns := l.Turns
		development := l.Development
		docs[i] = layerDoc{
			Diameter:       &diameter,
			Length:         &length,
			MaterialID:     &materialID,
			MaterialName:   l.MaterialName,
			Turns:          &turns,
			Thickness:      l.Thickness,
			DiameterFinal:  l.DiameterFinal,
			Development:    &development,
			ManualOverride: l.ManualOverride,
			UnitPrice:      l.UnitPrice,
			UsedArea:       l.UsedArea,
			TotalCost:      l.TotalCost,
			MarkedCost:     l.MarkedCost,
			IsTapered:      l.Kind == GeometryTapered,
			Sections:       l.Sections,
		}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return "", shared.Storage("quote: marshal layers", err)
	}
	return string(raw), nil
}

// UnmarshalLayers parses a layer document, rejecting records that miss a
// required field and tolerating the legacy "stratifica" alias.
func UnmarshalLayers(doc string) ([]Layer, error) {
	if doc == "" {
		return nil, nil
	}
	var docs []layerDoc
	if err := json.Unmarshal([]byte(doc), &docs); err != nil {
		return nil, shared.Storage("quote: unmarshal layers", err)
	}
	layers := make([]Layer, 0, len(docs))
	for i, d := range docs {
		if d.Diameter == nil {
			return nil, shared.Validationf("quote: layer %d missing diameter", i)
		}
		if d.Length == nil {
			return nil, shared.Validationf("quote: layer %d missing length", i)
		}
		if d.MaterialID == nil {
			return nil, shared.Validationf("quote: layer %d missing material_id", i)
		}
		if d.Turns == nil {
			return nil, shared.Validationf("quote: layer %d missing turns", i)
		}
		development := 0.0
		switch {
		case d.Development != nil:
			development = *d.Development
		case d.Stratifica != nil:
			development = *d.Stratifica
		}
		kind := GeometryCylindrical
		if d.IsTapered {
			kind = GeometryTapered
		}
		layers = append(layers, Layer{
			DiameterIn:     *d.Diameter,
			LengthTotal:    *d.Length,
			Turns:          *d.Turns,
			MaterialID:     *d.MaterialID,
			MaterialName:   d.MaterialName,
			Thickness:      d.Thickness,
			UnitPrice:      d.UnitPrice,
			ManualOverride: d.ManualOverride,
			Kind:           kind,
			Sections:       d.Sections,
			DiameterFinal:  d.DiameterFinal,
			Development:    development,
			UsedArea:       d.UsedArea,
			TotalCost:      d.TotalCost,
			MarkedCost:     d.MarkedCost,
			Computed:       true,
		})
	}
	return layers, nil
}

// quoteDoc mirrors the quote row fields inside a history snapshot, layers
// included as their serialized document.
type quoteDoc struct {
	CreatedAt       string  `json:"created_at"`
	RevisionNumber  int     `json:"revision_number"`
	OriginalQuoteID int64   `json:"original_quote_id"`
	ClientName      string  `json:"client_name"`
	OrderNumber     string  `json:"order_number"`
	Description     string  `json:"description"`
	Code            string  `json:"code"`
	Measure         string  `json:"measure"`
	Finish          string  `json:"finish"`
	MaterialsCost   float64 `json:"materials_cost"`
	AccessoriesCost float64 `json:"accessories_cost"`
	CuttingMin      float64 `json:"cutting_min"`
	WindingMin      float64 `json:"winding_min"`
	CleaningMin     float64 `json:"cleaning_min"`
	GrindingMin     float64 `json:"grinding_min"`
	PackingMin      float64 `json:"packing_min"`
	LaborTotalMin   float64 `json:"labor_total_min"`
	Subtotal        float64 `json:"subtotal"`
	Markup25        float64 `json:"markup_25"`
	FinalQuote      float64 `json:"final_quote"`
	ClientPrice     float64 `json:"client_price"`
	LayersJSON      string  `json:"layers_json"`
	RevisionNote    string  `json:"revision_note"`
}

type historyDoc struct {
	Timestamp string   `json:"timestamp"`
	Data      quoteDoc `json:"data"`
}

func toQuoteDoc(q Quote) (quoteDoc, error) {
	layersJSON, err := MarshalLayers(q.Layers)
	if err != nil {
		return quoteDoc{}, err
	}
	return quoteDoc{
		CreatedAt:       q.CreatedAt.UTC().Format(time.RFC3339Nano),
		RevisionNumber:  q.RevisionNumber,
		OriginalQuoteID: q.OriginalQuoteID,
		ClientName:      q.ClientName,
		OrderNumber:     q.OrderNumber,
		Description:     q.Description,
		Code:            q.Code,
		Measure:         q.Measure,
		Finish:          q.Finish,
		MaterialsCost:   q.MaterialsCost,
		AccessoriesCost: q.AccessoriesCost,
		CuttingMin:      q.CuttingMin,
		WindingMin:      q.WindingMin,
		CleaningMin:     q.CleaningMin,
		GrindingMin:     q.GrindingMin,
		PackingMin:      q.PackingMin,
		LaborTotalMin:   q.LaborTotalMin,
		Subtotal:        q.Subtotal,
		Markup25:        q.Markup25,
		FinalQuote:      q.FinalQuote,
		ClientPrice:     q.ClientPrice,
		LayersJSON:      layersJSON,
		RevisionNote:    q.RevisionNote,
	}, nil
}

func fromQuoteDoc(d quoteDoc) (Quote, error) {
	layers, err := UnmarshalLayers(d.LayersJSON)
	if err != nil {
		return Quote{}, err
	}
	var createdAt time.Time
	if d.CreatedAt != "" {
		createdAt, err = time.Parse(time.RFC3339Nano, d.CreatedAt)
		if err != nil {
			return Quote{}, shared.Validationf("quote: bad snapshot created_at %q", d.CreatedAt)
		}
	}
	return Quote{
		CreatedAt:       createdAt,
		RevisionNumber:  d.RevisionNumber,
		OriginalQuoteID: d.OriginalQuoteID,
		ClientName:      d.ClientName,
		OrderNumber:     d.OrderNumber,
		Description:     d.Description,
		Code:            d.Code,
		Measure:         d.Measure,
		Finish:          d.Finish,
		MaterialsCost:   d.MaterialsCost,
		AccessoriesCost: d.AccessoriesCost,
		CuttingMin:      d.CuttingMin,
		WindingMin:      d.WindingMin,
		CleaningMin:     d.CleaningMin,
		GrindingMin:     d.GrindingMin,
		PackingMin:      d.PackingMin,
		LaborTotalMin:   d.LaborTotalMin,
		Subtotal:        d.Subtotal,
		Markup25:        d.Markup25,
		FinalQuote:      d.FinalQuote,
		ClientPrice:     d.ClientPrice,
		RevisionNote:    d.RevisionNote,
		Layers:          layers,
	}, nil
}

// MarshalHistory serializes the snapshot log, oldest first.
func MarshalHistory(entries []HistoryEntry) (string, error) {
	docs := make([]historyDoc, len(entries))
	for i, e := range entries {
		data, err := toQuoteDoc(e.Data)
		if err != nil {
			return "", err
		}
		docs[i] = historyDoc{
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
			Data:      data,
		}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return "", shared.Storage("quote: marshal history", err)
	}
	return string(raw), nil
}

// UnmarshalHistory parses the snapshot log.
func UnmarshalHistory(doc string) ([]HistoryEntry, error) {
	if doc == "" {
		return nil, nil
	}
	var docs []historyDoc
	if err := json.Unmarshal([]byte(doc), &docs); err != nil {
		return nil, shared.Storage("quote: unmarshal history", err)
	}
	entries := make([]HistoryEntry, 0, len(docs))
	for _, d := range docs {
		ts, err := time.Parse(time.RFC3339Nano, d.Timestamp)
		if err != nil {
			return nil, shared.Validationf("quote: bad history timestamp %q", d.Timestamp)
		}
		data, err := fromQuoteDoc(d.Data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, HistoryEntry{Timestamp: ts, Data: data})
	}
	return entries, nil
}
