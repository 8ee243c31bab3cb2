package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testSlotPosition struct {
	X, Y float64
}

type testSlotFloat struct {
	Depth, Alpha float64
}

func TestCreateEntity_SequentialIDs(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
	if em.Count() != 2 {
		t.Errorf("Count() = %d, want 2", em.Count())
	}
}

func TestGenericComponentAccess(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	t.Run("添加后可读取同一指针", func(t *testing.T) {
		pos := &testSlotPosition{X: 100, Y: 200}
		AddComponent(em, id, pos)

		got, ok := GetComponent[*testSlotPosition](em, id)
		if !ok {
			t.Fatal("GetComponent should find the component")
		}
		if got != pos {
			t.Error("GetComponent should return the stored pointer")
		}
	})

	t.Run("缺失组件返回零值", func(t *testing.T) {
		got, ok := GetComponent[*testSlotFloat](em, id)
		if ok || got != nil {
			t.Errorf("GetComponent = (%v, %v), want (nil, false)", got, ok)
		}
		if HasComponent[*testSlotFloat](em, id) {
			t.Error("HasComponent should be false before adding")
		}
	})

	t.Run("泛型与反射接口互通", func(t *testing.T) {
		em.AddComponent(id, &testSlotFloat{Depth: 1.2})
		if !HasComponent[*testSlotFloat](em, id) {
			t.Error("component added via reflection API should be visible to generic API")
		}
		if !em.HasComponent(id, reflect.TypeOf(&testSlotPosition{})) {
			t.Error("component added via generic API should be visible to reflection API")
		}
	})

	t.Run("未知实体", func(t *testing.T) {
		if _, ok := GetComponent[*testSlotPosition](em, 999); ok {
			t.Error("GetComponent on unknown entity should fail")
		}
		AddComponent(em, 999, &testSlotPosition{})
		if HasComponent[*testSlotPosition](em, 999) {
			t.Error("AddComponent on unknown entity should be ignored")
		}
	})
}

func TestGetEntitiesWith_PreservesCreationOrder(t *testing.T) {
	em := NewEntityManager()
	var want []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testSlotPosition{X: float64(i)})
		if i%3 != 0 {
			AddComponent(em, id, &testSlotFloat{})
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testSlotPosition, *testSlotFloat](em)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result[%d] = %d, want %d (order must follow creation)", i, got[i], want[i])
		}
	}

	if n := len(GetEntitiesWith1[*testSlotPosition](em)); n != 50 {
		t.Errorf("GetEntitiesWith1 = %d entities, want 50", n)
	}
}

func TestDestroyEntity_Deferred(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()
	for _, id := range []EntityID{id1, id2, id3} {
		AddComponent(em, id, &testSlotPosition{})
	}

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)

	// 清理前实体仍存在
	if !HasComponent[*testSlotPosition](em, id1) {
		t.Error("entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()

	if HasComponent[*testSlotPosition](em, id1) || HasComponent[*testSlotPosition](em, id3) {
		t.Error("marked entities should be removed after cleanup")
	}
	entities := em.Entities()
	if len(entities) != 1 || entities[0] != id2 {
		t.Errorf("Entities() = %v, want [%d]", entities, id2)
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 5; i++ {
		AddComponent(em, em.CreateEntity(), &testSlotPosition{})
	}
	em.Clear()

	if em.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", em.Count())
	}
	if len(GetEntitiesWith1[*testSlotPosition](em)) != 0 {
		t.Error("query after Clear should be empty")
	}
	// ID 不复用
	if id := em.CreateEntity(); id != 6 {
		t.Errorf("CreateEntity after Clear = %d, want 6", id)
	}
}

func TestEntities_ReturnsCopy(t *testing.T) {
	em := NewEntityManager()
	em.CreateEntity()
	list := em.Entities()
	list[0] = 42
	if em.Entities()[0] != 1 {
		t.Error("Entities() must not expose internal storage")
	}
}
