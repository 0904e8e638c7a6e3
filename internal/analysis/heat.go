package analysis

import (
	"math"
)

// lengthFactorCap 限制长文带来的加成，避免超长贴文分数失控
const lengthFactorCap = 0.5

// HeatResult 单篇贴文的全部热度指标
type HeatResult struct {
	TotalInteractions int
	HeatDensity       float64
	FreshnessScore    float64
	EngagementRate    float64
	ViralPotential    float64
}

// HeatScorer 基于时间衰减的热度打分器，DecayRate 可调
type HeatScorer struct {
	DecayRate float64
}

func NewHeatScorer(decayRate float64) *HeatScorer {
	return &HeatScorer{DecayRate: decayRate}
}

// Score 纯函数：由归一化贴文计算各项指标。
// 热度 = 次线性基础热度 * 指数时间衰减 * (1 + 长度因子)
func (s *HeatScorer) Score(p *NormalizedPost) HeatResult {
	total := p.Likes + p.Replies + p.Reposts

	// 以 24 小时为基准的指数衰减
	timeDecay := math.Exp(-s.DecayRate * p.HoursSincePost / 24)

	// log1p 抑制单篇爆款贴文拉爆量纲
	baseHeat := math.Log1p(float64(total))

	lengthFactor := 0.0
	if p.ContentLength > 0 {
		lengthFactor = math.Log1p(float64(p.ContentLength)) / 10
		if lengthFactor > lengthFactorCap {
			lengthFactor = lengthFactorCap
		}
	}

	heatDensity := baseHeat * timeDecay * (1 + lengthFactor)

	denom := p.ContentLength
	if denom < 1 {
		denom = 1
	}
	engagementRate := float64(total) / float64(denom)

	// 有界组合：偏好新鲜、高互动、情感极化的贴文
	saturated := 1 - 1/(1+math.Log1p(float64(total)))
	viral := 0.4*timeDecay + 0.4*saturated + 0.2*math.Abs(p.SentimentScore)

	return HeatResult{
		TotalInteractions: total,
		HeatDensity:       heatDensity,
		FreshnessScore:    clamp01(timeDecay),
		EngagementRate:    engagementRate,
		ViralPotential:    clamp01(viral),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
