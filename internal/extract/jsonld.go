package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// ExtractJSONLD parses every application/ld+json script block on the page.
// Three shapes are recognized: a single schema.org JobPosting object, an
// array of them, and an ItemList whose itemListElement entries wrap
// JobPosting objects. Field mapping follows the schema.org convention;
// individual field failures drop the field, never the record.
func ExtractJSONLD(p *Page) []models.JobPosting {
	if p == nil || p.Doc == nil {
		return nil
	}

	var jobs []models.JobPosting
	p.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := s.Text()
		if !gjson.Valid(raw) {
			return
		}
		data := gjson.Parse(raw)

		switch {
		case data.IsObject() && data.Get("@type").String() == "JobPosting":
			if job, ok := parseJSONLDJob(p, data); ok {
				jobs = append(jobs, job)
			}
		case data.IsObject() && data.Get("@type").String() == "ItemList":
			data.Get("itemListElement").ForEach(func(_, entry gjson.Result) bool {
				item := entry.Get("item")
				if !item.Exists() {
					item = entry
				}
				if item.Get("@type").String() == "JobPosting" {
					if job, ok := parseJSONLDJob(p, item); ok {
						jobs = append(jobs, job)
					}
				}
				return true
			})
		case data.IsArray():
			data.ForEach(func(_, item gjson.Result) bool {
				if item.Get("@type").String() == "JobPosting" {
					if job, ok := parseJSONLDJob(p, item); ok {
						jobs = append(jobs, job)
					}
				}
				return true
			})
		}
	})

	return jobs
}

func parseJSONLDJob(p *Page, data gjson.Result) (models.JobPosting, bool) {
	title := data.Get("title").String()
	if title == "" {
		return models.JobPosting{}, false
	}

	company := stringOrName(data, "hiringOrganization")
	if company == "" {
		company = p.Org
	}

	location := jsonLDLocation(data.Get("jobLocation"))

	jobURL := data.Get("url").String()
	if jobURL == "" {
		jobURL = p.URL
	}

	description := data.Get("description").String()
	if description != "" {
		description = Truncate(utils.CleanText(StripHTML(description)), DescriptionLimit)
	}

	job := models.JobPosting{
		Title:       utils.CleanText(title),
		Company:     utils.CleanText(company),
		Location:    location,
		Description: description,
		JobType:     jsonLDEmploymentType(data.Get("employmentType")),
		URL:         jobURL,
	}

	if salary := data.Get("baseSalary"); salary.IsObject() {
		applyJSONLDSalary(&job, salary)
	}

	if posted := data.Get("datePosted").String(); posted != "" {
		if d := ParseISODate(posted); d != nil {
			job.PostedDate = d
		}
	}

	job.SourceID = data.Get("identifier.value").String()
	if job.SourceID == "" {
		job.SourceID = utils.GenerateSourceID(job.Title, job.Company, job.URL)
	}

	return job, true
}

// jsonLDLocation joins addressLocality and addressRegion with ", ",
// dropping empty parts. jobLocation may be a single Place or a list.
func jsonLDLocation(loc gjson.Result) string {
	if loc.IsArray() {
		loc = loc.Get("0")
	}
	addr := loc.Get("address")
	if !addr.IsObject() {
		return ""
	}
	return joinLocation(addr.Get("addressLocality").String(), addr.Get("addressRegion").String())
}

// jsonLDEmploymentType maps schema.org employmentType values (string or
// list) onto the job-type enumeration.
func jsonLDEmploymentType(et gjson.Result) string {
	if et.IsArray() {
		et = et.Get("0")
	}
	value := strings.ToUpper(et.String())

	switch {
	case strings.Contains(value, "FULL"):
		return models.JobTypeFullTime
	case strings.Contains(value, "PART"):
		return models.JobTypePartTime
	case strings.Contains(value, "INTERN"):
		return models.JobTypeInternship
	case strings.Contains(value, "CONTRACT"):
		return models.JobTypeContract
	}
	return ""
}

// applyJSONLDSalary fills the salary fields from a schema.org
// MonetaryAmount. A unitText containing YEAR means yearly, anything else
// is treated as hourly.
func applyJSONLDSalary(job *models.JobPosting, salary gjson.Result) {
	value := salary.Get("value")
	if !value.IsObject() {
		return
	}

	minVal := value.Get("minValue")
	maxVal := value.Get("maxValue")
	if !minVal.Exists() && !maxVal.Exists() {
		return
	}

	unit := strings.ToUpper(salary.Get("unitText").String())
	if strings.Contains(unit, "YEAR") {
		job.SalaryType = models.SalaryYearly
	} else {
		job.SalaryType = models.SalaryHourly
	}

	if minVal.Exists() {
		v := minVal.Float()
		job.SalaryMin = &v
	}
	if maxVal.Exists() {
		v := maxVal.Float()
		job.SalaryMax = &v
	}
}
