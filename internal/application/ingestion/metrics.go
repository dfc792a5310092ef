package ingestion

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de resultado del pipeline de ingesta.
var (
	documentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facturacion_ingestion_documents_total",
		Help: "Documentos procesados por el pipeline de ingesta, por resultado.",
	}, []string{"outcome"}) // rejected | extracted | failed

	draftsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facturacion_ingestion_drafts_resolved_total",
		Help: "Borradores resueltos por el operador, por destino.",
	}, []string{"resolution"}) // committed | discarded
)
