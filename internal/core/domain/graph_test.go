package domain_test

import (
	"errors"
	"reflect"
	"testing"

	"go.trai.ch/forge/internal/core/domain"
)

func unit(name string, deps ...string) *domain.Unit {
	return &domain.Unit{Name: name, Kind: domain.KindPackage, Dependencies: deps}
}

func TestGraph_AddUnit_Duplicate(t *testing.T) {
	g := domain.NewGraph()

	if err := g.AddUnit(unit("shared")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddUnit(unit("shared")); !errors.Is(err, domain.ErrUnitAlreadyExists) {
		t.Errorf("expected ErrUnitAlreadyExists, got %v", err)
	}
}

func TestGraph_Validate_MissingDependency(t *testing.T) {
	g := domain.NewGraph()
	if err := g.AddUnit(unit("app", "nowhere")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := g.Validate(); !errors.Is(err, domain.ErrMissingDependency) {
		t.Errorf("expected ErrMissingDependency, got %v", err)
	}
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	for _, u := range []*domain.Unit{unit("a", "b"), unit("b", "c"), unit("c", "a")} {
		if err := g.AddUnit(u); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := g.Validate(); !errors.Is(err, domain.ErrCycleDetected) {
		t.Errorf("expected ErrCycleDetected, got %v", err)
	}
}

func TestGraph_Levels_Diamond(t *testing.T) {
	g := domain.NewGraph()
	// app -> ui -> shared, app -> shared
	for _, u := range []*domain.Unit{unit("app", "ui", "shared"), unit("ui", "shared"), unit("shared")} {
		if err := g.AddUnit(u); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The direct edge app -> shared must not pull app below ui.
	want := [][]string{{"shared"}, {"ui"}, {"app"}}
	if got := g.Levels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestGraph_Levels(t *testing.T) {
	g := domain.NewGraph()
	// two roots (shared, utils), one mid (ui), one top (app)
	for _, u := range []*domain.Unit{
		unit("app", "ui"),
		unit("ui", "shared", "utils"),
		unit("shared"),
		unit("utils"),
	} {
		if err := g.AddUnit(u); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][]string{{"shared", "utils"}, {"ui"}, {"app"}}
	if got := g.Levels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}
