package catalog

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/flanksource/decks/api"
)

// category is a run of slides whose titles cycle through topics.
type category struct {
	prefix string
	count  int
	topics []string
	body   func(g *ultimateGen, index int) api.Slide
}

type ultimateGen struct {
	rng *rand.Rand
}

// Ultimate is the 230 slide index driven deck.
func Ultimate(opts Options) *api.Deck {
	return ultimate("ultimate", "SDV Ultimate Comprehensive Analysis", "SDV_Ultimate_Comprehensive_200_Slides.pptx", opts.seed())
}

// UltimateTechnical is the same structure with its own sample figures.
func UltimateTechnical(opts Options) *api.Deck {
	return ultimate("ultimate-technical", "SDV Technical Deep Dive", "SDV_Technical_Deep_Dive_200_Slides.pptx", opts.seed()+1)
}

func ultimate(name, title, output string, seed int64) *api.Deck {
	g := &ultimateGen{rng: rand.New(rand.NewSource(seed))}
	deck := &api.Deck{Name: name, Title: title, Output: output, Theme: "professional"}
	for _, c := range categories {
		for i := 0; i < c.count; i++ {
			s := c.body(g, i)
			if c.prefix == "" {
				s.Title = fmt.Sprintf(c.topics[0], i+1)
			} else {
				s.Title = c.prefix + c.topics[i%len(c.topics)]
			}
			deck.Slides = append(deck.Slides, s)
		}
	}
	return deck
}

var categories = []category{
	{
		count:  10,
		topics: []string{"Opening Section - Slide %d"},
		body: func(_ *ultimateGen, i int) api.Slide {
			return api.Slide{Kind: api.KindText, Text: openingTexts[i%len(openingTexts)]}
		},
	},
	{
		prefix: "Market Analysis: ",
		count:  30,
		topics: []string{
			"Global SDV Market Size Projection",
			"Regional Market Share Analysis",
			"OEM Investment Landscape",
			"Software Revenue Models",
			"Subscription Service Adoption",
			"Technology Stack Market",
			"Semiconductor Demand Forecast",
			"Cloud Services Integration",
			"Data Monetization Opportunities",
			"Ecosystem Partner Networks",
		},
		body: func(g *ultimateGen, i int) api.Slide {
			switch i % 3 {
			case 0:
				return g.chart()
			case 1:
				return g.table()
			}
			return detailed()
		},
	},
	{
		prefix: "中国 SDV 标准: ",
		count:  40,
		topics: []string{
			"GB/T 40429-2021 Terminology Deep Dive",
			"Service Domain Classification System",
			"Atomic Service API Specification",
			"Device Abstraction Layer Design",
			"Message Protocol Standards",
			"Security Framework Requirements",
			"Testing and Certification Process",
			"Implementation Timeline",
			"Compliance Requirements",
			"International Alignment Strategy",
		},
		body: func(_ *ultimateGen, i int) api.Slide {
			if i%2 == 0 {
				return api.Slide{Kind: api.KindText, Mono: true, Text: apiExample}
			}
			return detailed()
		},
	},
	{
		prefix: "Technical Deep Dive: ",
		count:  30,
		topics: []string{
			"Zonal Architecture Implementation",
			"High-Performance Computing Platform",
			"Real-time Operating Systems",
			"Virtualization and Containers",
			"Service Mesh Architecture",
			"Event-Driven Architecture",
			"Data Pipeline Design",
			"ML/AI Integration Framework",
			"Cybersecurity Architecture",
			"OTA Update Mechanisms",
		},
		body: func(_ *ultimateGen, _ int) api.Slide {
			s := api.Slide{Kind: api.KindLayers}
			for i := 1; i <= 5; i++ {
				s.Layers = append(s.Layers, api.Layer{Name: fmt.Sprintf("Architecture Layer %d", i)})
			}
			return s
		},
	},
	{
		prefix: "Global Comparison: ",
		count:  25,
		topics: []string{
			"China vs AUTOSAR: Architecture",
			"API Design Philosophy Comparison",
			"Ecosystem Maturity Analysis",
			"Development Tools Availability",
			"Certification Requirements",
			"Time to Market Analysis",
			"Cost Structure Comparison",
			"Talent Requirements",
			"IP and Licensing Models",
			"Government Support Levels",
		},
		body: func(g *ultimateGen, _ int) api.Slide { return g.table() },
	},
	{
		prefix: "한국 전략: ",
		count:  35,
		topics: []string{
			"현황 분석: 강점과 약점",
			"기회 요인 상세 분석",
			"위협 요인 및 대응 방안",
			"단기 전략 (2024-2025)",
			"중기 전략 (2026-2027)",
			"장기 비전 (2028-2030)",
			"R&D 투자 우선순위",
			"인재 양성 마스터플랜",
			"생태계 구축 전략",
			"글로벌 파트너십 전략",
			"정부 지원 정책",
			"규제 개선 방안",
			"표준화 참여 전략",
			"수출 전략",
			"성공 시나리오",
		},
		body: func(_ *ultimateGen, _ int) api.Slide { return detailed() },
	},
	{
		prefix: "Implementation: ",
		count:  20,
		topics: []string{
			"Governance Structure",
			"Program Management Office",
			"Phase 1: Quick Wins",
			"Phase 2: Foundation Building",
			"Phase 3: Scaling Up",
			"Budget Allocation Plan",
			"Resource Planning",
			"Risk Management Framework",
			"Change Management",
			"Communication Strategy",
		},
		body: func(_ *ultimateGen, _ int) api.Slide {
			s := api.Slide{Kind: api.KindTimeline}
			for i := 0; i < 4; i++ {
				n := i + 1
				s.Phases = append(s.Phases, api.Phase{
					Phase:   fmt.Sprintf("Phase %d", n),
					Title:   fmt.Sprintf("%d", 2024+i),
					Details: []string{fmt.Sprintf("Milestone %d", n), fmt.Sprintf("Deliverable %d", n), fmt.Sprintf("KPI Target %d", n)},
				})
			}
			return s
		},
	},
	{
		prefix: "Case Study: ",
		count:  15,
		topics: []string{
			"Tesla: Full Stack Integration",
			"Volkswagen: CARIAD Platform",
			"BYD: China Champion",
			"Toyota: Arene OS",
			"GM: Ultifi Platform",
			"Mercedes: MB.OS",
			"Hyundai: ccOS Development",
			"NIO: Service Innovation",
			"Waymo: Autonomous Focus",
			"Apple: Project Titan",
		},
		body: func(_ *ultimateGen, _ int) api.Slide { return detailed() },
	},
	{
		prefix: "Future Outlook: ",
		count:  10,
		topics: []string{
			"2030 Vision: Autonomous Everything",
			"2035 Projection: Full SDV Adoption",
			"Emerging Technologies Impact",
			"Quantum Computing in SDV",
			"6G and Beyond",
			"AI Singularity in Vehicles",
			"Sustainability Integration",
			"New Business Models",
			"Societal Impact",
			"Regulatory Evolution",
		},
		body: func(g *ultimateGen, _ int) api.Slide { return g.chart() },
	},
	{
		prefix: "Appendix: ",
		count:  15,
		topics: []string{
			"Detailed Technical Specifications",
			"API Reference Guide",
			"Glossary of Terms",
			"Bibliography",
			"Data Sources",
			"Methodology",
			"Acknowledgments",
			"Contact Information",
			"Legal Disclaimers",
			"Additional Resources",
		},
		body: func(_ *ultimateGen, _ int) api.Slide { return detailed() },
	},
}

var years = []string{"2024", "2025", "2026", "2027", "2028", "2029", "2030"}

// chart is a clustered column chart of sample figures between 100 and 1000.
func (g *ultimateGen) chart() api.Slide {
	c := &api.Chart{Type: api.ChartColumn, Categories: years}
	for s := 1; s <= 3; s++ {
		series := api.Series{Name: fmt.Sprintf("Series %d", s)}
		for range years {
			series.Values = append(series.Values, float64(100+g.rng.Intn(901)))
		}
		c.Series = append(c.Series, series)
	}
	return api.Slide{Kind: api.KindChart, Chart: c}
}

func (g *ultimateGen) table() api.Slide {
	t := &api.Table{Headers: []string{"항목", "2024", "2025", "2026", "2027", "2030"}}
	for r := 1; r < 10; r++ {
		row := []string{fmt.Sprintf("Item %d", r)}
		for c := 1; c < len(t.Headers); c++ {
			row = append(row, fmt.Sprintf("%d", 100+g.rng.Intn(900)))
		}
		t.Rows = append(t.Rows, row)
	}
	return api.Slide{Kind: api.KindTable, Table: t}
}

func detailed() api.Slide {
	return api.Slide{Kind: api.KindText, Text: detailedText}
}

var openingTexts = []string{
	strings.TrimSpace(`
SDV represents the most significant transformation in automotive history since the invention of the internal combustion engine.

The shift from hardware-defined to software-defined vehicles fundamentally changes:
• Value creation models - from one-time sales to continuous revenue
• Development cycles - from 5-7 years to continuous updates
• Customer relationships - from transactional to subscription-based
• Competitive dynamics - from hardware differentiation to software innovation

Market projections indicate that by 2030:
• 95% of new vehicles will have SDV capabilities
• Software will represent 60% of vehicle value
• Annual software-related revenue will exceed $500 billion globally
• Over 10 million jobs will be created in SDV-related fields`),
	strings.TrimSpace(`
중국의 SDV 표준화 전략은 단순한 기술 표준을 넘어 산업 패권 전략의 일환입니다.

핵심 전략 요소:
• 정부 주도 통합 표준 제정으로 파편화 방지
• 자국 기업 우선 정책으로 내수 시장 보호
• 대규모 보조금으로 빠른 기술 개발 지원
• 데이터 주권 확보를 통한 플랫폼 장악

2025년까지의 목표:
• 100% 신차 SDV 표준 적용
• 10개 글로벌 SDV 기업 육성
• SDV 플랫폼 수출 시작
• 국제 표준화 주도권 확보`),
	strings.TrimSpace(`
Technical architecture evolution in SDV requires fundamental rethinking of vehicle E/E systems.

Key architectural shifts:
• From 100+ distributed ECUs to 4-6 zone controllers
• From CAN/LIN networks to Ethernet backbone (10Gbps+)
• From embedded RTOS to Linux/QNX with hypervisors
• From static configuration to dynamic software deployment

Computing requirements are exploding:
• L2 ADAS: 10-30 TOPS
• L4 Autonomous: 200-500 TOPS
• Total vehicle: 1000+ TOPS by 2030
• Memory: 128GB+ RAM, 1TB+ storage
• Network bandwidth: 100Gbps+ aggregate`),
}

var detailedText = strings.TrimSpace(`
Comprehensive analysis reveals multiple layers of complexity in SDV implementation:

Technical Challenges:
• Integration of 100+ software modules from different vendors
• Real-time performance requirements (sub-millisecond latency)
• Cybersecurity threats requiring military-grade protection
• Safety certification across multiple standards (ISO 26262, ISO 21434)

Business Challenges:
• ROI uncertainty with 5-7 year payback periods
• Talent shortage with 50,000+ unfilled positions globally
• Supply chain dependencies on specialized semiconductors
• Regulatory compliance across 50+ countries

Strategic Imperatives:
• First-mover advantage in emerging markets
• Platform economics driving winner-take-all dynamics
• Data sovereignty becoming national security issue
• Standards wars determining future market access`)

var apiExample = strings.TrimSpace(`
// Atomic Service API Example
{
  "header": {
    "serviceId": "vehicle.powertrain.control",
    "version": "2.0.0",
    "timestamp": "2024-08-26T10:30:00.000Z",
    "requestId": "uuid-1234-5678-90ab-cdef",
    "auth": {
      "token": "Bearer eyJhbGciOiJIUzI1NiIs...",
      "clientId": "app.navigation.system"
    }
  },
  "method": "setPowerMode",
  "params": {
    "mode": "SPORT_PLUS",
    "settings": {
      "throttleResponse": 100,
      "suspensionStiffness": 85,
      "steeringWeight": 75,
      "exhaustMode": "OPEN"
    }
  }
}`)
