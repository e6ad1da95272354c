package service

import "math"

// 推荐评分算法：由学校排名反推录取门槛，计算学生三科匹配度的加权合成分。
// rank 越小的学校门槛越高；rank 缺失（<=0）时使用固定默认门槛，避免除零。

// 合成权重：GPA 最高
const (
	toeflWeight = 0.3
	greWeight   = 0.3
	gpaWeight   = 0.4
)

// 默认录取门槛（rank 缺失时）
const (
	defaultToeflRequirement = 90
	defaultGreRequirement   = 300
	defaultGpaRequirement   = 3.5
)

// RecommendThreshold 推荐分数下限，低于该值的学校不进入推荐结果
const RecommendThreshold = 60.0

// admissionRequirements 由排名推导出的三科录取门槛
type admissionRequirements struct {
	toefl float64
	gre   float64
	gpa   float64
}

// requirementsForRank 由学校排名反推录取门槛
func requirementsForRank(rank int) admissionRequirements {
	if rank <= 0 {
		return admissionRequirements{
			toefl: defaultToeflRequirement,
			gre:   defaultGreRequirement,
			gpa:   defaultGpaRequirement,
		}
	}
	r := float64(rank)
	return admissionRequirements{
		toefl: 110 - 0.2*r,
		gre:   330 - 0.1*r,
		gpa:   3.8 - 0.002*r,
	}
}

// matchScore 单项匹配度 = min(成绩/门槛×100, 100)
// 上限 100：超额达标不再加分
func matchScore(score, requirement float64) float64 {
	m := score / requirement * 100
	if m > 100 {
		return 100
	}
	return m
}

// recommendationScore 加权合成推荐分
func recommendationScore(toefl, gre, gpa float64, rank int) float64 {
	req := requirementsForRank(rank)
	return toeflWeight*matchScore(toefl, req.toefl) +
		greWeight*matchScore(gre, req.gre) +
		gpaWeight*matchScore(gpa, req.gpa)
}

// round2 四舍五入到 2 位小数
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
