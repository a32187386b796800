package cart

import (
	"context"
	"encoding/json"
	"testing"

	"gursha-client/internal/domain"
)

type stubKV struct {
	docs   map[string][]byte
	getErr error
	putErr error
	puts   int
}

func newStubKV() *stubKV {
	return &stubKV{docs: map[string][]byte{}}
}

func (s *stubKV) Get(_ context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	doc, ok := s.docs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (s *stubKV) Put(_ context.Context, key string, value []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.docs[key] = append([]byte(nil), value...)
	s.puts++
	return nil
}

func (s *stubKV) stored(t *testing.T) []domain.CartLine {
	t.Helper()
	doc, ok := s.docs[storeKey]
	if !ok {
		return nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(doc, &lines); err != nil {
		t.Fatalf("decode stored cart: %v", err)
	}
	return lines
}

func TestStoreAddOrIncrement(t *testing.T) {
	kv := newStubKV()
	store := NewStore(kv, nil)
	ctx := context.Background()

	if err := store.AddOrIncrement(ctx, "Burger", 500); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddOrIncrement(ctx, "Burger", 500); err != nil {
		t.Fatalf("add again: %v", err)
	}
	if err := store.AddOrIncrement(ctx, "Soda", 200); err != nil {
		t.Fatalf("add soda: %v", err)
	}

	lines := kv.stored(t)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %+v", lines)
	}
	if lines[0].Name != "Burger" || lines[0].Quantity != 2 || lines[0].PriceCents != 500 {
		t.Fatalf("unexpected burger line %+v", lines[0])
	}
	if lines[1].Name != "Soda" || lines[1].Quantity != 1 {
		t.Fatalf("unexpected soda line %+v", lines[1])
	}
	// every mutation wrote through
	if kv.puts != 3 {
		t.Fatalf("expected 3 durable writes, got %d", kv.puts)
	}
}

func TestStoreAddOrIncrement_MalformedIsNoOp(t *testing.T) {
	kv := newStubKV()
	store := NewStore(kv, nil)
	ctx := context.Background()

	if err := store.AddOrIncrement(ctx, "   ", 100); err != nil {
		t.Fatalf("blank name: %v", err)
	}
	if err := store.AddOrIncrement(ctx, "Burger", -1); err != nil {
		t.Fatalf("negative price: %v", err)
	}
	if kv.puts != 0 {
		t.Fatalf("expected no writes, got %d", kv.puts)
	}
}

func TestStoreSetQuantity(t *testing.T) {
	kv := newStubKV()
	store := NewStore(kv, nil)
	ctx := context.Background()

	_ = store.AddOrIncrement(ctx, "Burger", 500)
	_ = store.AddOrIncrement(ctx, "Soda", 200)

	if err := store.SetQuantity(ctx, "Burger", 5); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	lines := kv.stored(t)
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", lines[0])
	}

	// zero removes the line
	if err := store.SetQuantity(ctx, "Soda", 0); err != nil {
		t.Fatalf("set zero: %v", err)
	}
	lines = kv.stored(t)
	if len(lines) != 1 || lines[0].Name != "Burger" {
		t.Fatalf("expected soda removed, got %+v", lines)
	}

	// idempotent: removing again changes nothing
	before := kv.puts
	if err := store.SetQuantity(ctx, "Soda", 0); err != nil {
		t.Fatalf("set zero again: %v", err)
	}
	if kv.puts != before {
		t.Fatalf("expected no extra write for no-op removal")
	}
	again := kv.stored(t)
	if len(again) != 1 || again[0].Name != "Burger" || again[0].Quantity != 5 {
		t.Fatalf("cart changed on repeated removal: %+v", again)
	}
}

func TestStoreSetQuantity_UnknownNameIsNoOp(t *testing.T) {
	kv := newStubKV()
	store := NewStore(kv, nil)
	ctx := context.Background()

	_ = store.AddOrIncrement(ctx, "Burger", 500)
	before := kv.puts
	if err := store.SetQuantity(ctx, "Pizza", 3); err != nil {
		t.Fatalf("unknown name: %v", err)
	}
	if kv.puts != before {
		t.Fatalf("expected no write for unknown name")
	}
}

func TestStoreInvariants_MixedSequence(t *testing.T) {
	kv := newStubKV()
	store := NewStore(kv, nil)
	ctx := context.Background()

	_ = store.AddOrIncrement(ctx, "Burger", 500)
	_ = store.AddOrIncrement(ctx, "Soda", 200)
	_ = store.AddOrIncrement(ctx, "Burger", 500)
	_ = store.SetQuantity(ctx, "Soda", 4)
	_ = store.Remove(ctx, "Burger")
	_ = store.AddOrIncrement(ctx, "Burger", 500)
	_ = store.SetQuantity(ctx, "Burger", -2)

	lines, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	seen := map[string]bool{}
	for _, line := range lines {
		if seen[line.Name] {
			t.Fatalf("duplicate line for %s: %+v", line.Name, lines)
		}
		seen[line.Name] = true
		if line.Quantity <= 0 {
			t.Fatalf("non-positive quantity persisted: %+v", line)
		}
	}
	if len(lines) != 1 || lines[0].Name != "Soda" || lines[0].Quantity != 4 {
		t.Fatalf("unexpected final cart %+v", lines)
	}
}

func TestStoreClear(t *testing.T) {
	kv := newStubKV()
	store := NewStore(kv, nil)
	ctx := context.Background()

	_ = store.AddOrIncrement(ctx, "Burger", 500)
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	lines, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
	if string(kv.docs[storeKey]) != "[]" {
		t.Fatalf("expected durable empty list, got %s", kv.docs[storeKey])
	}
}

func TestStoreLoad_SanitizesStoredDocument(t *testing.T) {
	kv := newStubKV()
	kv.docs[storeKey] = []byte(`[
		{"name":"Burger","priceCents":500,"quantity":2},
		{"name":"Burger","priceCents":500,"quantity":1},
		{"name":"Ghost","priceCents":100,"quantity":0},
		{"name":"","priceCents":100,"quantity":3}
	]`)
	store := NewStore(kv, nil)

	lines, err := store.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(lines) != 1 || lines[0].Name != "Burger" || lines[0].Quantity != 3 {
		t.Fatalf("expected merged burger line, got %+v", lines)
	}
}

func TestStoreSubscribe_NotifiedOnMutation(t *testing.T) {
	kv := newStubKV()
	store := NewStore(kv, nil)
	ctx := context.Background()

	ch := store.Subscribe()
	if err := store.AddOrIncrement(ctx, "Burger", 500); err != nil {
		t.Fatalf("add: %v", err)
	}
	select {
	case <-ch:
	default:
		t.Fatalf("expected notification after mutation")
	}

	// no-op mutations do not notify
	if err := store.SetQuantity(ctx, "Pizza", 2); err != nil {
		t.Fatalf("no-op: %v", err)
	}
	select {
	case <-ch:
		t.Fatalf("unexpected notification for no-op")
	default:
	}
}
