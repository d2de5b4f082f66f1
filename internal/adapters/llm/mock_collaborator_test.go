package llm

import (
	"context"
	"fleet-dispatch-service/internal/domain"
	"testing"
)

const sampleManifest = `Código do Cliente;Nome do Cliente;CEP;Endereço;Prioridade
C001;Padaria do João;01310-100;Av. Paulista, 1000;Alta
C002;Mercado da Esquina;01302-000;Rua da Consolação, 500;Normal
C003;Loja de Games;05425-070;Shopping Eldorado;Baixa
`

func TestMockOptimizeManifest(t *testing.T) {
	mock := NewMockCollaborator()

	plan, err := mock.OptimizeManifest(context.Background(), sampleManifest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(plan.Stops))
	}

	first := plan.Stops[0]
	if first.ClientCode != "C001" || first.CustomerName != "Padaria do João" {
		t.Errorf("first stop fields wrong: %+v", first)
	}
	if first.ZipCode != "01310-100" || first.Address != "Av. Paulista, 1000" {
		t.Errorf("first stop location wrong: %+v", first)
	}
	if first.Priority != domain.PriorityHigh {
		t.Errorf("priority = %q, want %q", first.Priority, domain.PriorityHigh)
	}
	if plan.Stops[2].Priority != domain.PriorityLow {
		t.Errorf("third priority = %q, want %q", plan.Stops[2].Priority, domain.PriorityLow)
	}

	for i, s := range plan.Stops {
		if s.OrderIndex != i {
			t.Errorf("stop %d orderIndex = %d", i, s.OrderIndex)
		}
		if s.EstimatedLat == 0 || s.EstimatedLng == 0 {
			t.Errorf("stop %d has no coordinates", i)
		}
		if s.AssignedFleetID != "" {
			t.Errorf("stop %d born assigned to %q", i, s.AssignedFleetID)
		}
	}

	if plan.TotalDistanceKm <= 0 || plan.TotalTimeMinutes <= 0 || plan.Summary == "" {
		t.Errorf("aggregates missing: %+v", plan)
	}
}

func TestMockOptimizeManifestIsDeterministic(t *testing.T) {
	mock := NewMockCollaborator()

	a, err := mock.OptimizeManifest(context.Background(), sampleManifest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := mock.OptimizeManifest(context.Background(), sampleManifest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range a.Stops {
		if a.Stops[i] != b.Stops[i] {
			t.Errorf("stop %d differs between runs: %+v vs %+v", i, a.Stops[i], b.Stops[i])
		}
	}
}

func TestMockOptimizeManifestRejectsEmptyInput(t *testing.T) {
	mock := NewMockCollaborator()
	if _, err := mock.OptimizeManifest(context.Background(), "\n\n"); err == nil {
		t.Fatal("expected error for empty manifest")
	}
}

func TestMockParseAvailability(t *testing.T) {
	mock := NewMockCollaborator()

	schedule := `João da Silva - Folga
Maria Oliveira - Normal
Pedro Santos - Férias
linha sem separador
Ana Lima - Atestado
`
	absences, err := mock.ParseAvailability(context.Background(), schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(absences) != 3 {
		t.Fatalf("expected 3 absences, got %d: %+v", len(absences), absences)
	}
	if absences[0].Name != "João da Silva" || absences[0].Reason != "Folga" {
		t.Errorf("first absence wrong: %+v", absences[0])
	}
	if absences[1].Name != "Pedro Santos" || absences[1].Reason != "Férias" {
		t.Errorf("second absence wrong: %+v", absences[1])
	}
}
