package material

import (
	"sync"
	"testing"
)

func TestResolveReusesHandle(t *testing.T) {
	c := NewCache()

	a := c.Resolve("chrome01")
	b := c.Resolve("chrome01")
	if a != b {
		t.Error("same name must resolve to the same handle")
	}
	if a.Name != "chrome01" {
		t.Errorf("name = %q", a.Name)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}

	if c.Resolve("rubber") == a {
		t.Error("distinct names must not share a handle")
	}
	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}
}

func TestResolveConcurrentFirstWriterWins(t *testing.T) {
	c := NewCache()

	const n = 32
	got := make([]*Material, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = c.Resolve("chrome01")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if got[i] != got[0] {
			t.Fatal("racing resolvers observed different handles")
		}
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}
