package labelstudio

import "testing"

func TestBuildInsights(t *testing.T) {
	tasks := []Task{
		{
			ID:   1,
			Data: TaskData{SectionName: "skills", ResumeText: "Go, Python"},
			Annotations: []Annotation{
				{
					CompletedBy: AnnotationUser{Email: "reviewer@example.com"},
					Result: []AnnotationResult{
						{FromName: "section_type", Value: AnnotationValue{Choices: []string{"skills"}}},
						{FromName: "parsing_accuracy", Value: AnnotationValue{Rating: 5}},
					},
				},
			},
		},
		{
			ID:   2,
			Data: TaskData{SectionName: "education", ResumeText: "BSc"},
			Annotations: []Annotation{
				{
					Result: []AnnotationResult{
						{FromName: "section_type", Value: AnnotationValue{Choices: []string{"experience"}}},
						{FromName: "corrections", Value: AnnotationValue{Text: []string{"This is work history"}}},
						{FromName: "parsing_accuracy", Value: AnnotationValue{Rating: 2}},
					},
				},
			},
		},
		{
			ID:   3,
			Data: TaskData{SectionName: "objective", ResumeText: "never reviewed"},
		},
	}

	report := BuildInsights(7, "Resume Annotation", tasks)

	if report.ProjectID != 7 || report.ProjectTitle != "Resume Annotation" {
		t.Errorf("unexpected project header: %+v", report)
	}
	if report.TotalTasks != 3 {
		t.Errorf("expected 3 total tasks, got %d", report.TotalTasks)
	}
	if len(report.AnnotatedTasks) != 2 {
		t.Fatalf("expected 2 annotated tasks, got %d", len(report.AnnotatedTasks))
	}

	skills := report.Insights.SectionAccuracy["skills"]
	if skills.Correct != 1 || skills.Total != 1 {
		t.Errorf("expected skills 1/1, got %+v", skills)
	}
	edu := report.Insights.SectionAccuracy["education"]
	if edu.Correct != 0 || edu.Total != 1 {
		t.Errorf("expected education 0/1, got %+v", edu)
	}

	if len(report.Insights.CommonCorrections) != 1 {
		t.Fatalf("expected 1 correction, got %d", len(report.Insights.CommonCorrections))
	}
	if report.Insights.CommonCorrections[0].Section != "education" {
		t.Errorf("unexpected correction: %+v", report.Insights.CommonCorrections[0])
	}

	if len(report.Insights.ParsingIssues) != 1 {
		t.Fatalf("expected 1 parsing issue (rating below 3), got %d", len(report.Insights.ParsingIssues))
	}
	if report.Insights.ParsingIssues[0].Rating != 2 {
		t.Errorf("unexpected issue rating: %d", report.Insights.ParsingIssues[0].Rating)
	}
}

func TestBuildInsights_AnonymousAnnotator(t *testing.T) {
	tasks := []Task{
		{
			ID:          1,
			Data:        TaskData{SectionName: "name", ResumeText: "JANE DOE"},
			Annotations: []Annotation{{Result: []AnnotationResult{}}},
		},
	}
	report := BuildInsights(1, "p", tasks)
	if got := report.AnnotatedTasks[0].Annotations[0].Annotator; got != "Unknown" {
		t.Errorf("expected Unknown annotator, got %q", got)
	}
}

func TestBuildInsights_EmptyProject(t *testing.T) {
	report := BuildInsights(2, "empty", nil)
	if report.TotalTasks != 0 || len(report.AnnotatedTasks) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if report.Insights.SectionAccuracy == nil {
		t.Error("expected non-nil accuracy map")
	}
}
