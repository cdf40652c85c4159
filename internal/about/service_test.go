package about

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
)

type memStore struct {
	a *About
}

func (m *memStore) GetSingleton(ctx context.Context) (*About, error) {
	if m.a == nil {
		return nil, ErrNotConfigured
	}
	copied := *m.a
	return &copied, nil
}

func (m *memStore) Upsert(ctx context.Context, upd Update) (*About, error) {
	if m.a == nil {
		m.a = &About{ID: "about-1", Skills: []string{}, Education: []Education{}}
	}
	if upd.Bio != nil {
		m.a.Bio = *upd.Bio
	}
	if upd.Skills != nil {
		m.a.Skills = upd.Skills
	}
	if upd.Education != nil {
		m.a.Education = upd.Education
	}
	copied := *m.a
	return &copied, nil
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{" Python ", "", "Go", "  "})
	want := []string{"Python", "Go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeSkills = %v, want %v", got, want)
	}
}

func TestParseEducationFromString(t *testing.T) {
	raw := `[{"degree":" BSc CS ","institution":"MIT","year":"2020"},{"degree":"","institution":"","year":"x"}]`
	got, err := ParseEducation(raw)
	if err != nil {
		t.Fatalf("ParseEducation: %v", err)
	}
	want := []Education{{Degree: "BSc CS", Institution: "MIT", Year: "2020"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseEducation = %v, want %v", got, want)
	}
}

func TestParseEducationFromDecodedJSON(t *testing.T) {
	var v any
	if err := json.Unmarshal([]byte(`[{"degree":"MSc","institution":"ETH","year":"2023"}]`), &v); err != nil {
		t.Fatal(err)
	}
	got, err := ParseEducation(v)
	if err != nil {
		t.Fatalf("ParseEducation: %v", err)
	}
	if len(got) != 1 || got[0].Institution != "ETH" {
		t.Errorf("ParseEducation = %v", got)
	}
}

func TestParseEducationRejectsNonList(t *testing.T) {
	if _, err := ParseEducation(`{"degree":"BSc"}`); err == nil {
		t.Error("expected error for non-list education")
	}
}

func TestLookupSkillCaseInsensitive(t *testing.T) {
	s, ok := LookupSkill("pYtHoN")
	if !ok || s.Name != "Python" || s.Color != "#3776AB" {
		t.Errorf("LookupSkill = %+v, %v", s, ok)
	}
	if _, ok := LookupSkill("COBOL"); ok {
		t.Error("unexpected catalog hit for COBOL")
	}
}

func TestReadResolvesSkillMetadata(t *testing.T) {
	store := &memStore{a: &About{ID: "about-1", Skills: []string{"python", "Something Custom"}}}
	svc := NewService(store)

	a, err := svc.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(a.SkillDetails) != 2 {
		t.Fatalf("skillDetails = %v", a.SkillDetails)
	}
	if a.SkillDetails[0].Name != "Python" || a.SkillDetails[0].Icon != "python" {
		t.Errorf("catalog entry = %+v", a.SkillDetails[0])
	}
	if a.SkillDetails[1].Name != "Something Custom" || a.SkillDetails[1].Color != "" {
		t.Errorf("unknown skill should pass through name-only, got %+v", a.SkillDetails[1])
	}
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	svc := NewService(&memStore{})
	ctx := context.Background()

	bio := "hello"
	if _, err := svc.Update(ctx, Update{Bio: &bio, Skills: []string{"Go"}}); err != nil {
		t.Fatalf("update: %v", err)
	}

	a, err := svc.Update(ctx, Update{Education: []Education{{Degree: "BSc", Institution: "MIT"}}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if a.Bio != "hello" {
		t.Errorf("bio = %q, want untouched", a.Bio)
	}
	if !reflect.DeepEqual(a.Skills, []string{"Go"}) {
		t.Errorf("skills = %v, want untouched", a.Skills)
	}
	if len(a.Education) != 1 {
		t.Errorf("education = %v", a.Education)
	}
}
