package engine3D

const iridescentVS = `
#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;

out vec3 fragPosition;
out vec3 fragNormal;

void main() {
    fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
    fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 1.0)));
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// Metallic white with a thin-film hue shift driven by the view angle, lit by
// one colored spot light and a flat ambient term standing in for the
// environment map.
const iridescentFS = `
#version 330
in vec3 fragPosition;
in vec3 fragNormal;

uniform vec3 viewPos;
uniform vec3 lightPos;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform vec3 ambientColor;
uniform float filmIOR;

out vec4 finalColor;

vec3 thinFilm(float cosTheta) {
    float phase = filmIOR * 6.2831853 * (1.0 - cosTheta);
    return 0.5 + 0.5 * cos(vec3(phase, phase + 2.094, phase + 4.188));
}

void main() {
    vec3 n = normalize(fragNormal);
    vec3 v = normalize(viewPos - fragPosition);
    if (dot(n, v) < 0.0) n = -n;

    vec3 l = normalize(lightPos - fragPosition);
    vec3 h = normalize(l + v);

    float cosTheta = clamp(dot(n, v), 0.0, 1.0);
    vec3 film = thinFilm(cosTheta);
    float fresnel = pow(1.0 - cosTheta, 5.0);
    vec3 base = mix(vec3(1.0), film, 0.6 + 0.4 * fresnel);

    float diffuse = max(dot(n, l), 0.0);
    float specular = pow(max(dot(n, h), 0.0), 180.0);

    vec3 lit = base * (ambientColor + lightColor * lightIntensity * (0.25 * diffuse + specular));
    finalColor = vec4(lit, 1.0);
}
`

const tonemapFS = `
#version 330
in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D texture0;

out vec4 finalColor;

vec3 aces(vec3 x) {
    const float a = 2.51;
    const float b = 0.03;
    const float c = 2.43;
    const float d = 0.59;
    const float e = 0.14;
    return clamp((x * (a * x + b)) / (x * (c * x + d) + e), 0.0, 1.0);
}

void main() {
    vec4 texel = texture(texture0, fragTexCoord);
    finalColor = vec4(aces(texel.rgb), texel.a) * fragColor;
}
`
