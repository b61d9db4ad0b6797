package labelstudio

// InsightsReport summarises reviewer annotations on a project so the
// extraction catalogue can be tuned against real corrections.
type InsightsReport struct {
	ProjectID      int             `json:"project_id"`
	ProjectTitle   string          `json:"project_title"`
	TotalTasks     int             `json:"total_tasks"`
	AnnotatedTasks []AnnotatedTask `json:"annotated_tasks"`
	Insights       Insights        `json:"insights"`
}

type AnnotatedTask struct {
	TaskID       int              `json:"task_id"`
	SectionName  string           `json:"section_name"`
	OriginalText string           `json:"original_text"`
	Annotations  []TaskAnnotation `json:"annotations"`
}

type TaskAnnotation struct {
	Annotator string             `json:"annotator"`
	CreatedAt string             `json:"created_at"`
	Result    []AnnotationResult `json:"result"`
}

type Insights struct {
	SectionAccuracy   map[string]AccuracyCount `json:"section_accuracy"`
	CommonCorrections []Correction             `json:"common_corrections"`
	ParsingIssues     []ParsingIssue           `json:"parsing_issues"`
}

type AccuracyCount struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type Correction struct {
	Section      string `json:"section"`
	Correction   string `json:"correction"`
	OriginalText string `json:"original_text"`
}

type ParsingIssue struct {
	Section string `json:"section"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
}

// BuildInsights folds a project's annotated tasks into a report. A
// section counts as correctly classified when the reviewer's choice
// matches the section the engine assigned; ratings below 3 flag the
// task as a parsing issue.
func BuildInsights(projectID int, projectTitle string, tasks []Task) *InsightsReport {
	report := &InsightsReport{
		ProjectID:    projectID,
		ProjectTitle: projectTitle,
		TotalTasks:   len(tasks),
		Insights: Insights{
			SectionAccuracy:   map[string]AccuracyCount{},
			CommonCorrections: []Correction{},
			ParsingIssues:     []ParsingIssue{},
		},
	}

	for _, task := range tasks {
		if len(task.Annotations) == 0 {
			continue
		}
		section := task.Data.SectionName
		annotated := AnnotatedTask{
			TaskID:       task.ID,
			SectionName:  section,
			OriginalText: task.Data.ResumeText,
		}

		for _, ann := range task.Annotations {
			annotator := ann.CompletedBy.Email
			if annotator == "" {
				annotator = "Unknown"
			}
			annotated.Annotations = append(annotated.Annotations, TaskAnnotation{
				Annotator: annotator,
				CreatedAt: ann.CreatedAt,
				Result:    ann.Result,
			})

			for _, item := range ann.Result {
				switch item.FromName {
				case "section_type":
					if len(item.Value.Choices) == 0 {
						continue
					}
					acc := report.Insights.SectionAccuracy[section]
					acc.Total++
					if containsString(item.Value.Choices, section) {
						acc.Correct++
					}
					report.Insights.SectionAccuracy[section] = acc

				case "corrections":
					for _, text := range item.Value.Text {
						if text == "" {
							continue
						}
						report.Insights.CommonCorrections = append(report.Insights.CommonCorrections, Correction{
							Section:      section,
							Correction:   text,
							OriginalText: task.Data.ResumeText,
						})
					}

				case "parsing_accuracy":
					if item.Value.Rating > 0 && item.Value.Rating < 3 {
						report.Insights.ParsingIssues = append(report.Insights.ParsingIssues, ParsingIssue{
							Section: section,
							Rating:  item.Value.Rating,
							Text:    task.Data.ResumeText,
						})
					}
				}
			}
		}
		report.AnnotatedTasks = append(report.AnnotatedTasks, annotated)
	}
	return report
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
